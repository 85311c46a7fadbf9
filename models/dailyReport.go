package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
	"gorm.io/gorm"
)

// DailyReport is the unique-per-date container for a day's sale lines and ad
// spend. The uniqueness is enforced by the database index, not by
// check-then-insert, so two concurrent submissions for the same date cannot
// both land.
type DailyReport struct {
	ID           int             `gorm:"primary_key" json:"id"`
	Date         time.Time       `gorm:"type:date;uniqueIndex;not null" json:"date"`
	TotalAdSpend decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_ad_spend"`
	Notes        string          `gorm:"type:text" json:"notes"`

	Sales []*Sale `gorm:"foreignKey:ReportId" json:"sales"`

	// NetProfit is derived on read; see GetDailyReports.
	NetProfit decimal.Decimal `gorm:"-" json:"net_profit"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewReportSaleLine struct {
	ProductId    int             `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

type NewDailyReport struct {
	Date         time.Time            `json:"date" binding:"required" time_format:"2006-01-02"`
	TotalAdSpend decimal.Decimal      `json:"total_ad_spend"`
	Notes        string               `json:"notes"`
	Sales        []*NewReportSaleLine `json:"sales"`
}

func (input *NewDailyReport) validate() error {
	if input.TotalAdSpend.IsNegative() {
		return utils.NewValidationError("ad spend must not be negative")
	}
	for _, line := range input.Sales {
		if line.Quantity == 0 {
			return utils.NewValidationError("sale quantity must not be zero")
		}
		if line.SellingPrice.IsNegative() {
			return utils.NewValidationError("selling price must not be negative")
		}
	}
	return nil
}

// CreateDailyReport creates the report and processes its sale lines in one
// transaction. A duplicate date surfaces as a ConflictError and the rollback
// guarantees no partial sale rows persist.
func CreateDailyReport(ctx context.Context, input *NewDailyReport) (*DailyReport, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:         utils.TruncateToDate(input.Date),
		TotalAdSpend: input.TotalAdSpend,
		Notes:        input.Notes,
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			if isDuplicateKeyError(err) {
				return utils.NewConflictError("a report for %s already exists", report.Date.Format(utils.DateLayout))
			}
			return err
		}
		for _, line := range input.Sales {
			sale, err := processSaleTx(tx, &NewSale{
				ReportId:     report.ID,
				ProductId:    line.ProductId,
				Quantity:     line.Quantity,
				SellingPrice: line.SellingPrice,
			})
			if err != nil {
				return err
			}
			report.Sales = append(report.Sales, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type UpdateDailyReportInput struct {
	TotalAdSpend decimal.Decimal      `json:"total_ad_spend"`
	Notes        string               `json:"notes"`
	Sales        []*NewReportSaleLine `json:"sales"`
}

// UpdateDailyReport replaces the report's ad spend and its full sale line set.
// Existing lines are reverted (stock restored) and the incoming set is
// reprocessed, all inside one transaction. Reprocessing recaptures COGS at
// the current cost basis.
func UpdateDailyReport(ctx context.Context, reportId int, input *UpdateDailyReportInput) (*DailyReport, error) {
	if input.TotalAdSpend.IsNegative() {
		return nil, utils.NewValidationError("ad spend must not be negative")
	}

	db := config.GetDB()

	var report DailyReport
	err := db.WithContext(ctx).Preload("Sales").First(&report, reportId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("report %d not found", reportId)
	}
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Revert existing lines before deleting them.
		for _, sale := range report.Sales {
			err := tx.Model(&Product{}).
				Where("id = ?", sale.ProductId).
				Update("current_stock", gorm.Expr("current_stock + ?", sale.Quantity)).Error
			if err != nil {
				return err
			}
		}
		if err := tx.Where("report_id = ?", report.ID).Delete(&Sale{}).Error; err != nil {
			return err
		}

		report.TotalAdSpend = input.TotalAdSpend
		if input.Notes != "" {
			report.Notes = input.Notes
		}
		err := tx.Model(&DailyReport{}).
			Where("id = ?", report.ID).
			Updates(map[string]any{
				"total_ad_spend": report.TotalAdSpend,
				"notes":          report.Notes,
			}).Error
		if err != nil {
			return err
		}

		report.Sales = nil
		for _, line := range input.Sales {
			sale, err := processSaleTx(tx, &NewSale{
				ReportId:     report.ID,
				ProductId:    line.ProductId,
				Quantity:     line.Quantity,
				SellingPrice: line.SellingPrice,
			})
			if err != nil {
				return err
			}
			report.Sales = append(report.Sales, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func GetDailyReportByDate(ctx context.Context, date time.Time) (*DailyReport, error) {
	var report DailyReport
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("Sales").
		Where("date = ?", utils.TruncateToDate(date)).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("no report for %s", date.Format(utils.DateLayout))
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetDailyReports lists reports newest-first with net profit derived on read:
// net = (revenue - cogs) - ad spend - that date's expenses.
func GetDailyReports(ctx context.Context, skip, limit int) ([]*DailyReport, error) {
	skip, limit = utils.NormalizeSkipLimit(skip, limit)

	var reports []*DailyReport
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("Sales").
		Preload("Sales.Product").
		Order("date DESC").
		Offset(skip).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	for _, report := range reports {
		dayExpenses, err := sumExpensesForDate(ctx, report.Date)
		if err != nil {
			return nil, err
		}
		report.NetProfit = reportNetProfit(report, dayExpenses).Round(2)
	}
	return reports, nil
}

func GetDailyReportsInRange(ctx context.Context, start, end time.Time) ([]*DailyReport, error) {
	var reports []*DailyReport
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("Sales").
		Preload("Sales.Product").
		Where("date >= ? AND date <= ?", utils.TruncateToDate(start), utils.TruncateToDate(end)).
		Order("date DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	for _, report := range reports {
		dayExpenses, err := sumExpensesForDate(ctx, report.Date)
		if err != nil {
			return nil, err
		}
		report.NetProfit = reportNetProfit(report, dayExpenses).Round(2)
	}
	return reports, nil
}

func reportNetProfit(report *DailyReport, dayExpenses decimal.Decimal) decimal.Decimal {
	revenue := decimal.Zero
	cogs := decimal.Zero
	for _, sale := range report.Sales {
		revenue = revenue.Add(sale.Revenue())
		cogs = cogs.Add(sale.CalculatedCogs)
	}
	return revenue.Sub(cogs).Sub(report.TotalAdSpend).Sub(dayExpenses)
}
