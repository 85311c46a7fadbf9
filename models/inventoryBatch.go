package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
	"gorm.io/gorm"
)

// InventoryBatch is one landed shipment of a product. RemainingQuantity is
// depleted FIFO by sales; LandingPrice feeds the product's weighted-average
// cost basis.
type InventoryBatch struct {
	ID                int             `gorm:"primary_key" json:"id"`
	ProductId         int             `gorm:"index;not null" json:"product_id"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	RemainingQuantity int             `gorm:"not null" json:"remaining_quantity"`
	LandingPrice      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"landing_price"`
	DateAdded         time.Time       `gorm:"autoCreateTime;index" json:"date_added"`
}

type NewInventoryBatch struct {
	ProductId    int             `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required"`
	LandingPrice decimal.Decimal `json:"landing_price"`
}

func (input *NewInventoryBatch) validate() error {
	if input.Quantity <= 0 {
		return utils.NewValidationError("batch quantity must be positive")
	}
	if input.LandingPrice.IsNegative() {
		return utils.NewValidationError("landing price must not be negative")
	}
	return nil
}

// CreateInventoryBatch records the batch, raises stock and re-derives the
// product's cost basis as a weighted average (AVCO) of the old stock value
// and the new batch value. Cost policy is AVCO, not latest-landing-price.
func CreateInventoryBatch(ctx context.Context, input *NewInventoryBatch) (*InventoryBatch, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := GetProduct(ctx, input.ProductId)
	if err != nil {
		return nil, err
	}

	batch := &InventoryBatch{
		ProductId:         input.ProductId,
		Quantity:          input.Quantity,
		RemainingQuantity: input.Quantity,
		LandingPrice:      input.LandingPrice,
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}

		currentValue := product.CostPrice.Mul(decimal.NewFromInt(int64(product.CurrentStock)))
		batchValue := input.LandingPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
		newStock := product.CurrentStock + input.Quantity

		if newStock > 0 {
			product.CostPrice = currentValue.Add(batchValue).
				Div(decimal.NewFromInt(int64(newStock))).
				Round(2)
		}
		product.CurrentStock = newStock

		return tx.Model(&Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]any{
				"cost_price":    product.CostPrice,
				"current_stock": product.CurrentStock,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func GetInventoryBatches(ctx context.Context, productId, skip, limit int) ([]*InventoryBatch, error) {
	skip, limit = utils.NormalizeSkipLimit(skip, limit)

	db := config.GetDB()
	query := db.WithContext(ctx).Model(&InventoryBatch{})
	if productId > 0 {
		query = query.Where("product_id = ?", productId)
	}

	var batches []*InventoryBatch
	err := query.Order("date_added").Offset(skip).Limit(limit).Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}
