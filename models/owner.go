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

// Owner is a fractional stakeholder. EquityPercentage is the global default
// share (0-100); per-product overrides live in ProductEquity. Percentages are
// independent per owner and are NOT required to sum to 100.
type Owner struct {
	ID               int             `gorm:"primary_key" json:"id"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	EquityPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"equity_percentage"`

	LedgerEntries   []*OwnerLedger   `gorm:"foreignKey:OwnerId" json:"-"`
	ProductEquities []*ProductEquity `gorm:"foreignKey:OwnerId" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewOwner struct {
	Name             string          `json:"name" binding:"required"`
	EquityPercentage decimal.Decimal `json:"equity_percentage"`
}

func (input *NewOwner) validate() error {
	if input.EquityPercentage.IsNegative() || input.EquityPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return utils.NewValidationError("equity percentage must be between 0 and 100")
	}
	return nil
}

func CreateOwner(ctx context.Context, input *NewOwner) (*Owner, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	owner := &Owner{
		Name:             input.Name,
		EquityPercentage: input.EquityPercentage,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(owner).Error; err != nil {
		return nil, err
	}
	return owner, nil
}

func GetOwners(ctx context.Context) ([]*Owner, error) {
	var owners []*Owner
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id").Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

func GetOwner(ctx context.Context, id int) (*Owner, error) {
	var owner Owner
	db := config.GetDB()
	err := db.WithContext(ctx).First(&owner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("owner %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

type NewProductEquity struct {
	ProductId        int             `json:"product_id" binding:"required"`
	EquityPercentage decimal.Decimal `json:"equity_percentage"`
}

// SetProductEquity upserts the single (product, owner) override. An override
// fully replaces the owner's global percentage for that product; it never
// blends with it.
func SetProductEquity(ctx context.Context, ownerId int, input *NewProductEquity) (*ProductEquity, error) {
	if input.EquityPercentage.IsNegative() || input.EquityPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, utils.NewValidationError("equity percentage must be between 0 and 100")
	}

	if _, err := GetOwner(ctx, ownerId); err != nil {
		return nil, err
	}
	if _, err := GetProduct(ctx, input.ProductId); err != nil {
		return nil, err
	}

	db := config.GetDB()

	var existing ProductEquity
	err := db.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerId, input.ProductId).
		First(&existing).Error
	if err == nil {
		existing.EquityPercentage = input.EquityPercentage
		if err := db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	equity := &ProductEquity{
		OwnerId:          ownerId,
		ProductId:        input.ProductId,
		EquityPercentage: input.EquityPercentage,
	}
	if err := db.WithContext(ctx).Create(equity).Error; err != nil {
		return nil, err
	}
	return equity, nil
}
