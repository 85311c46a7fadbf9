package models

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
	"gorm.io/gorm"
)

// Sale is one line item of a daily report. Quantity is signed: positive is a
// sale, negative a return, and the sign carries through revenue and COGS.
// CalculatedCogs is captured at the time of sale from the product's AVCO cost
// basis, so later cost changes never rewrite history.
type Sale struct {
	ID             int             `gorm:"primary_key" json:"id"`
	ReportId       int             `gorm:"index;not null" json:"report_id"`
	ProductId      int             `gorm:"index;not null" json:"product_id"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	CalculatedCogs decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"calculated_cogs"`

	Product *Product `gorm:"foreignKey:ProductId" json:"product,omitempty"`
}

// Revenue is the sign-aware contribution of this line: quantity x price.
func (s *Sale) Revenue() decimal.Decimal {
	return s.SellingPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

type NewSale struct {
	ReportId     int             `json:"report_id" binding:"required"`
	ProductId    int             `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

func (input *NewSale) validate() error {
	if input.Quantity == 0 {
		return utils.NewValidationError("sale quantity must not be zero")
	}
	if input.SellingPrice.IsNegative() {
		return utils.NewValidationError("selling price must not be negative")
	}
	return nil
}

// ProcessSale records one sale line in its own transaction.
func ProcessSale(ctx context.Context, input *NewSale) (*Sale, error) {
	var sale *Sale
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sale, err = processSaleTx(tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// processSaleTx applies a sale line inside the caller's transaction: it
// captures COGS from the current AVCO cost, depletes batch remainders FIFO
// and adjusts product stock. Returns (negative quantity) restore stock and
// carry negative COGS; batch remainders are not replenished.
func processSaleTx(tx *gorm.DB, input *NewSale) (*Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var product Product
	if err := tx.First(&product, input.ProductId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("product %d not found", input.ProductId)
		}
		return nil, err
	}

	if input.Quantity > 0 && product.CurrentStock < input.Quantity {
		return nil, utils.NewValidationError("insufficient stock for product %s", product.Name)
	}

	totalCogs := product.CostPrice.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2)

	if input.Quantity > 0 {
		if err := depleteBatchesFifo(tx, input.ProductId, input.Quantity); err != nil {
			return nil, err
		}
	}

	newStock := product.CurrentStock - input.Quantity
	err := tx.Model(&Product{}).
		Where("id = ?", product.ID).
		Update("current_stock", newStock).Error
	if err != nil {
		return nil, err
	}

	sale := &Sale{
		ReportId:       input.ReportId,
		ProductId:      input.ProductId,
		Quantity:       input.Quantity,
		SellingPrice:   input.SellingPrice,
		CalculatedCogs: totalCogs,
	}
	if err := tx.Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// depleteBatchesFifo walks batches oldest-first, consuming remaining
// quantities. COGS does not depend on which batch is depleted (AVCO), this
// only tracks physical remainders.
func depleteBatchesFifo(tx *gorm.DB, productId, quantity int) error {
	var batches []*InventoryBatch
	err := tx.Where("product_id = ? AND remaining_quantity > 0", productId).
		Order("date_added ASC").
		Find(&batches).Error
	if err != nil {
		return err
	}

	toFulfill := quantity
	for _, batch := range batches {
		if toFulfill <= 0 {
			break
		}
		take := batch.RemainingQuantity
		if take > toFulfill {
			take = toFulfill
		}
		batch.RemainingQuantity -= take
		toFulfill -= take
		err := tx.Model(&InventoryBatch{}).
			Where("id = ?", batch.ID).
			Update("remaining_quantity", batch.RemainingQuantity).Error
		if err != nil {
			return err
		}
	}
	return nil
}
