package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
)

// Expense is a cost entry. ProductId attributes it to one product's P&L;
// without one it is a company-wide cost shared by global equity. PaidById
// records which owner fronted the cash (feeds the top-payers view).
type Expense struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Date        time.Time       `gorm:"type:date;index;not null" json:"date"`
	Category    string          `gorm:"size:64;not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Description string          `gorm:"size:1024" json:"description"`
	ProductId   *int            `gorm:"index" json:"product_id,omitempty"`
	PaidById    *int            `gorm:"index" json:"paid_by_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewExpense struct {
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ProductId   *int            `json:"product_id"`
	PaidById    *int            `json:"paid_by_id"`
}

func (input *NewExpense) validate(ctx context.Context) error {
	if input.Amount.IsNegative() {
		return utils.NewValidationError("expense amount must not be negative")
	}
	if !IsKnownExpenseCategory(input.Category) {
		return utils.NewValidationError("unknown expense category %q", input.Category)
	}
	if input.ProductId != nil {
		if _, err := GetProduct(ctx, *input.ProductId); err != nil {
			return err
		}
	}
	if input.PaidById != nil {
		if _, err := GetOwner(ctx, *input.PaidById); err != nil {
			return err
		}
	}
	return nil
}

func CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	expense := &Expense{
		Date:        utils.TruncateToDate(input.Date),
		Category:    input.Category,
		Amount:      input.Amount,
		Description: input.Description,
		ProductId:   input.ProductId,
		PaidById:    input.PaidById,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func GetExpenses(ctx context.Context, skip, limit int) ([]*Expense, error) {
	skip, limit = utils.NormalizeSkipLimit(skip, limit)

	var expenses []*Expense
	db := config.GetDB()
	err := db.WithContext(ctx).
		Order("date DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func sumExpensesForDate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	var r row
	db := config.GetDB()
	err := db.WithContext(ctx).
		Model(&Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("date = ?", utils.TruncateToDate(date)).
		Scan(&r).Error
	if err != nil {
		return decimal.Zero, err
	}
	return r.Total, nil
}

type TopPayerResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// GetTopExpensePayers ranks owners by the expense cash they personally fronted.
func GetTopExpensePayers(ctx context.Context, limit int) ([]*TopPayerResponse, error) {
	if limit <= 0 {
		limit = 5
	}

	var results []*TopPayerResponse
	db := config.GetDB()
	err := db.WithContext(ctx).
		Model(&Expense{}).
		Select("owners.name AS name, SUM(expenses.amount) AS amount").
		Joins("JOIN owners ON owners.id = expenses.paid_by_id").
		Group("owners.name").
		Order("amount DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		r.Amount = utils.DisplayAmount(r.Amount)
	}
	return results, nil
}
