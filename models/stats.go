package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
)

// DashboardStats is a period financial summary. Date holds the calendar date
// for daily stats and "lifetime" for the all-time aggregate.
type DashboardStats struct {
	Date        string          `json:"date"`
	Revenue     decimal.Decimal `json:"revenue"`
	Cogs        decimal.Decimal `json:"cogs"`
	AdSpend     decimal.Decimal `json:"ad_spend"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`
}

// summarizePeriod derives the dependent figures from the raw ones, keeping
// gross = revenue - cogs and net = gross - ad spend - expenses exact.
func summarizePeriod(label string, revenue, cogs, adSpend, expenses decimal.Decimal) *DashboardStats {
	grossProfit := revenue.Sub(cogs)
	return &DashboardStats{
		Date:        label,
		Revenue:     revenue,
		Cogs:        cogs,
		AdSpend:     adSpend,
		GrossProfit: grossProfit,
		Expenses:    expenses,
		NetProfit:   grossProfit.Sub(adSpend).Sub(expenses),
	}
}

// GetDashboardStats computes the summary for one date, or lifetime when date
// is nil. Pure read; calling it twice with no intervening writes yields
// identical output. A date with ad spend but no sales simply produces a
// negative net profit.
func GetDashboardStats(ctx context.Context, date *time.Time) (*DashboardStats, error) {
	if date != nil {
		return getDailyStats(ctx, *date)
	}
	return getLifetimeStats(ctx)
}

func getDailyStats(ctx context.Context, date time.Time) (*DashboardStats, error) {
	day := utils.TruncateToDate(date)

	revenue := decimal.Zero
	cogs := decimal.Zero
	adSpend := decimal.Zero

	report, err := GetDailyReportByDate(ctx, day)
	if err != nil && utils.KindOf(err) != utils.ErrorKindNotFound {
		return nil, err
	}
	if report != nil {
		for _, sale := range report.Sales {
			revenue = revenue.Add(sale.Revenue())
			cogs = cogs.Add(sale.CalculatedCogs)
		}
		adSpend = report.TotalAdSpend
	}

	expenses, err := sumExpensesForDate(ctx, day)
	if err != nil {
		return nil, err
	}

	return summarizePeriod(day.Format(utils.DateLayout), revenue, cogs, adSpend, expenses), nil
}

func getLifetimeStats(ctx context.Context) (*DashboardStats, error) {
	db := config.GetDB()

	type salesTotals struct {
		Revenue decimal.Decimal `gorm:"column:revenue"`
		Cogs    decimal.Decimal `gorm:"column:cogs"`
	}
	var sales salesTotals
	err := db.WithContext(ctx).
		Model(&Sale{}).
		Select("COALESCE(SUM(selling_price * quantity), 0) AS revenue, COALESCE(SUM(calculated_cogs), 0) AS cogs").
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}

	type sumRow struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	var ads sumRow
	err = db.WithContext(ctx).
		Model(&DailyReport{}).
		Select("COALESCE(SUM(total_ad_spend), 0) AS total").
		Scan(&ads).Error
	if err != nil {
		return nil, err
	}

	var expenses sumRow
	err = db.WithContext(ctx).
		Model(&Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&expenses).Error
	if err != nil {
		return nil, err
	}

	return summarizePeriod("lifetime", sales.Revenue, sales.Cogs, ads.Total, expenses.Total), nil
}

// buildHistory gap-fills the trailing window ending at end: exactly days
// entries in ascending date order, zeroed stats for dates with no activity.
func buildHistory(end time.Time, days int, reports map[string]*DailyReport, expensesByDate map[string]decimal.Decimal) []*DashboardStats {
	end = utils.TruncateToDate(end)
	history := make([]*DashboardStats, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		key := day.Format(utils.DateLayout)

		revenue := decimal.Zero
		cogs := decimal.Zero
		adSpend := decimal.Zero
		if report, ok := reports[key]; ok {
			for _, sale := range report.Sales {
				revenue = revenue.Add(sale.Revenue())
				cogs = cogs.Add(sale.CalculatedCogs)
			}
			adSpend = report.TotalAdSpend
		}
		history = append(history, summarizePeriod(key, revenue, cogs, adSpend, expensesByDate[key]))
	}
	return history
}

// GetSalesHistory returns daily stats for the trailing N days including
// today, deterministic and gap-filled for trend charts.
func GetSalesHistory(ctx context.Context, days int) ([]*DashboardStats, error) {
	if days <= 0 {
		days = 30
	}

	end := utils.TruncateToDate(time.Now().UTC())
	start := end.AddDate(0, 0, -(days - 1))

	db := config.GetDB()

	var reports []*DailyReport
	err := db.WithContext(ctx).
		Preload("Sales").
		Where("date >= ? AND date <= ?", start, end).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	reportsByDate := make(map[string]*DailyReport, len(reports))
	for _, report := range reports {
		reportsByDate[report.Date.Format(utils.DateLayout)] = report
	}

	type expenseRow struct {
		Date  time.Time       `gorm:"column:date"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	var expenseRows []expenseRow
	err = db.WithContext(ctx).
		Model(&Expense{}).
		Select("date, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ? AND date <= ?", start, end).
		Group("date").
		Scan(&expenseRows).Error
	if err != nil {
		return nil, err
	}
	expensesByDate := make(map[string]decimal.Decimal, len(expenseRows))
	for _, r := range expenseRows {
		expensesByDate[r.Date.Format(utils.DateLayout)] = r.Total
	}

	return buildHistory(end, days, reportsByDate, expensesByDate), nil
}

type ProductSalesStat struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// GetProductSalesStats ranks the top ten products by lifetime sales value.
func GetProductSalesStats(ctx context.Context) ([]*ProductSalesStat, error) {
	var stats []*ProductSalesStat
	db := config.GetDB()
	err := db.WithContext(ctx).
		Model(&Product{}).
		Select("products.name AS name, COALESCE(SUM(sales.selling_price * sales.quantity), 0) AS value").
		Joins("JOIN sales ON sales.product_id = products.id").
		Group("products.name").
		Order("value DESC").
		Limit(10).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		s.Value = utils.DisplayAmount(s.Value)
	}
	return stats, nil
}
