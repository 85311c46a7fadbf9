package models

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
)

var oneHundred = decimal.NewFromInt(100)

// ProfitLine is one profit-contributing line item. ProductId == 0 marks a
// company-wide line (ad spend, unattributed expenses) which is shared by
// global equity only. Amount is signed; costs are negative lines and the
// sign carries straight through to owner shares.
type ProfitLine struct {
	Label     string
	Amount    decimal.Decimal
	ProductId int
}

type equityKey struct {
	ProductId int
	OwnerId   int
}

// equityBook resolves an owner's percentage for a product: the (product,
// owner) override when present, otherwise the owner's global percentage.
// An override fully replaces the global value; it never blends.
type equityBook struct {
	overrides map[equityKey]decimal.Decimal
}

func newEquityBook(overrides []*ProductEquity) *equityBook {
	book := &equityBook{overrides: make(map[equityKey]decimal.Decimal, len(overrides))}
	for _, eq := range overrides {
		book.overrides[equityKey{ProductId: eq.ProductId, OwnerId: eq.OwnerId}] = eq.EquityPercentage
	}
	return book
}

func (b *equityBook) percentageFor(owner *Owner, productId int) decimal.Decimal {
	if productId != 0 {
		if pct, ok := b.overrides[equityKey{ProductId: productId, OwnerId: owner.ID}]; ok {
			return pct
		}
	}
	return owner.EquityPercentage
}

// AllocateProfit distributes each line across owners and sums per-owner
// contributions at full precision. Rounding happens only when responses are
// assembled, never while accumulating.
func AllocateProfit(owners []*Owner, overrides []*ProductEquity, lines []ProfitLine) map[int]decimal.Decimal {
	book := newEquityBook(overrides)

	totals := make(map[int]decimal.Decimal, len(owners))
	for _, owner := range owners {
		totals[owner.ID] = decimal.Zero
	}

	for _, line := range lines {
		for _, owner := range owners {
			pct := book.percentageFor(owner, line.ProductId)
			if pct.IsZero() {
				continue
			}
			share := line.Amount.Mul(pct).Div(oneHundred)
			totals[owner.ID] = totals[owner.ID].Add(share)
		}
	}
	return totals
}

type BreakdownLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type OwnerProfitSummaryResponse struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	TotalProfit decimal.Decimal  `json:"total_profit"`
	TotalPaid   decimal.Decimal  `json:"total_paid"`
	Balance     decimal.Decimal  `json:"balance"`
	Breakdown   []*BreakdownLine `json:"breakdown"`
}

// gatherLifetimeProfitLines builds the lifetime profit breakdown: one line
// per product (revenue - captured COGS - product-attributed expenses) plus a
// single negative company-wide line for ad spend and unattributed expenses.
func gatherLifetimeProfitLines(ctx context.Context) ([]ProfitLine, []*Owner, []*ProductEquity, error) {
	db := config.GetDB()

	owners, err := GetOwners(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	var overrides []*ProductEquity
	if err := db.WithContext(ctx).Find(&overrides).Error; err != nil {
		return nil, nil, nil, err
	}

	var products []*Product
	if err := db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, nil, nil, err
	}

	type salesRow struct {
		ProductId int             `gorm:"column:product_id"`
		Revenue   decimal.Decimal `gorm:"column:revenue"`
		Cogs      decimal.Decimal `gorm:"column:cogs"`
	}
	var salesRows []salesRow
	err = db.WithContext(ctx).
		Model(&Sale{}).
		Select("product_id, COALESCE(SUM(selling_price * quantity), 0) AS revenue, COALESCE(SUM(calculated_cogs), 0) AS cogs").
		Group("product_id").
		Scan(&salesRows).Error
	if err != nil {
		return nil, nil, nil, err
	}
	salesByProduct := make(map[int]salesRow, len(salesRows))
	for _, r := range salesRows {
		salesByProduct[r.ProductId] = r
	}

	var expenses []*Expense
	if err := db.WithContext(ctx).Find(&expenses).Error; err != nil {
		return nil, nil, nil, err
	}
	globalExpenses := decimal.Zero
	expensesByProduct := make(map[int]decimal.Decimal)
	for _, exp := range expenses {
		if exp.ProductId != nil {
			expensesByProduct[*exp.ProductId] = expensesByProduct[*exp.ProductId].Add(exp.Amount)
		} else {
			globalExpenses = globalExpenses.Add(exp.Amount)
		}
	}

	type adRow struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	var ads adRow
	err = db.WithContext(ctx).
		Model(&DailyReport{}).
		Select("COALESCE(SUM(total_ad_spend), 0) AS total").
		Scan(&ads).Error
	if err != nil {
		return nil, nil, nil, err
	}

	lines := make([]ProfitLine, 0, len(products)+1)
	for _, product := range products {
		fin := salesByProduct[product.ID]
		net := fin.Revenue.Sub(fin.Cogs).Sub(expensesByProduct[product.ID])
		lines = append(lines, ProfitLine{
			Label:     product.Name,
			Amount:    net,
			ProductId: product.ID,
		})
	}

	globalCosts := ads.Total.Add(globalExpenses)
	if !globalCosts.IsZero() {
		lines = append(lines, ProfitLine{
			Label:  GlobalCostsLabel,
			Amount: globalCosts.Neg(),
		})
	}
	return lines, owners, overrides, nil
}

func lifetimeOwnerProfits(ctx context.Context) (map[int]decimal.Decimal, error) {
	lines, owners, overrides, err := gatherLifetimeProfitLines(ctx)
	if err != nil {
		return nil, err
	}
	return AllocateProfit(owners, overrides, lines), nil
}

// GetOwnerProfitSummary computes, for every owner, lifetime profit share,
// cash already paid out, outstanding balance, and the audited line-item
// breakdown feeding the total.
func GetOwnerProfitSummary(ctx context.Context) ([]*OwnerProfitSummaryResponse, error) {
	lines, owners, overrides, err := gatherLifetimeProfitLines(ctx)
	if err != nil {
		return nil, err
	}
	book := newEquityBook(overrides)

	results := make([]*OwnerProfitSummaryResponse, 0, len(owners))
	for _, owner := range owners {
		total := decimal.Zero
		breakdown := make([]*BreakdownLine, 0, len(lines))
		for _, line := range lines {
			pct := book.percentageFor(owner, line.ProductId)
			if pct.IsZero() {
				continue
			}
			share := line.Amount.Mul(pct).Div(oneHundred)
			total = total.Add(share)
			breakdown = append(breakdown, &BreakdownLine{
				Name:   line.Label,
				Amount: utils.DisplayAmount(share),
			})
		}
		sort.SliceStable(breakdown, func(i, j int) bool {
			return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
		})

		paid, err := sumOwnerPayments(ctx, owner.ID)
		if err != nil {
			return nil, err
		}

		results = append(results, &OwnerProfitSummaryResponse{
			ID:          owner.ID,
			Name:        owner.Name,
			TotalProfit: utils.DisplayAmount(total),
			TotalPaid:   utils.DisplayAmount(paid),
			Balance:     utils.DisplayAmount(total.Sub(paid)),
			Breakdown:   breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalProfit.GreaterThan(results[j].TotalProfit)
	})
	return results, nil
}

type ExpenseLiabilityResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// GetExpenseLiabilitySummary estimates each owner's share of all recorded
// expenses, using the same override-then-global resolution the allocator uses.
func GetExpenseLiabilitySummary(ctx context.Context) ([]*ExpenseLiabilityResponse, error) {
	db := config.GetDB()

	owners, err := GetOwners(ctx)
	if err != nil {
		return nil, err
	}

	var overrides []*ProductEquity
	if err := db.WithContext(ctx).Find(&overrides).Error; err != nil {
		return nil, err
	}
	book := newEquityBook(overrides)

	var expenses []*Expense
	if err := db.WithContext(ctx).Find(&expenses).Error; err != nil {
		return nil, err
	}

	liability := make(map[int]decimal.Decimal, len(owners))
	for _, owner := range owners {
		liability[owner.ID] = decimal.Zero
	}

	for _, exp := range expenses {
		productId := 0
		if exp.ProductId != nil {
			productId = *exp.ProductId
		}
		for _, owner := range owners {
			pct := book.percentageFor(owner, productId)
			if pct.IsZero() {
				continue
			}
			liability[owner.ID] = liability[owner.ID].Add(exp.Amount.Mul(pct).Div(oneHundred))
		}
	}

	results := make([]*ExpenseLiabilityResponse, 0, len(owners))
	for _, owner := range owners {
		results = append(results, &ExpenseLiabilityResponse{
			Name:   owner.Name,
			Amount: utils.DisplayAmount(liability[owner.ID]),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Amount.GreaterThan(results[j].Amount)
	})
	return results, nil
}
