package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
)

// OwnerLedger is the append-only record of cash paid out to owners. Balances
// are never stored; they are recomputed on read from this log and the
// allocator, which sidesteps cache invalidation entirely.
type OwnerLedger struct {
	ID              int                   `gorm:"primary_key" json:"id"`
	OwnerId         int                   `gorm:"index;not null" json:"owner_id"`
	Amount          decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"amount"`
	TransactionType LedgerTransactionType `gorm:"size:32;not null" json:"transaction_type"`
	Date            time.Time             `gorm:"index;not null" json:"date"`

	Owner *Owner `gorm:"foreignKey:OwnerId" json:"owner,omitempty"`
}

type NewOwnerPayment struct {
	OwnerId int             `json:"owner_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Date    *time.Time      `json:"date"`
}

// CreateOwnerPayment appends a PAYOUT entry. Overpayment is allowed: real
// payouts can precede reconciliation, so the balance may go negative.
func CreateOwnerPayment(ctx context.Context, input *NewOwnerPayment) (*OwnerLedger, error) {
	if !input.Amount.IsPositive() {
		return nil, utils.NewValidationError("payment amount must be positive")
	}
	if _, err := GetOwner(ctx, input.OwnerId); err != nil {
		if utils.KindOf(err) == utils.ErrorKindNotFound {
			return nil, utils.NewValidationError("owner %d does not exist", input.OwnerId)
		}
		return nil, err
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	entry := &OwnerLedger{
		OwnerId:         input.OwnerId,
		Amount:          input.Amount,
		TransactionType: LedgerTransactionPayout,
		Date:            date,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// GetOwnerPayments returns the ledger newest-first, each entry annotated with
// the owner's display name.
func GetOwnerPayments(ctx context.Context, skip, limit int) ([]*OwnerLedger, error) {
	skip, limit = utils.NormalizeSkipLimit(skip, limit)

	var entries []*OwnerLedger
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("Owner").
		Where("transaction_type = ?", LedgerTransactionPayout).
		Order("date DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func sumOwnerPayments(ctx context.Context, ownerId int) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	var r row
	db := config.GetDB()
	err := db.WithContext(ctx).
		Model(&OwnerLedger{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("owner_id = ? AND transaction_type = ?", ownerId, LedgerTransactionPayout).
		Scan(&r).Error
	if err != nil {
		return decimal.Zero, err
	}
	return r.Total, nil
}

type OwnerBalanceResponse struct {
	OwnerId int             `json:"owner_id"`
	Balance decimal.Decimal `json:"balance"`
}

// GetOwnerBalance is total lifetime profit (from the allocator) minus the sum
// of the owner's payout entries.
func GetOwnerBalance(ctx context.Context, ownerId int) (*OwnerBalanceResponse, error) {
	if _, err := GetOwner(ctx, ownerId); err != nil {
		return nil, err
	}

	profits, err := lifetimeOwnerProfits(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := sumOwnerPayments(ctx, ownerId)
	if err != nil {
		return nil, err
	}

	return &OwnerBalanceResponse{
		OwnerId: ownerId,
		Balance: utils.DisplayAmount(profits[ownerId].Sub(paid)),
	}, nil
}
