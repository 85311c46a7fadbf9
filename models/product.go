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

type Product struct {
	ID           int             `gorm:"primary_key" json:"id"`
	Name         string          `gorm:"size:255;not null;index" json:"name"`
	Sku          string          `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Price        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	CurrentStock int             `gorm:"default:0" json:"current_stock"`
	ProductUrl   string          `gorm:"size:1024" json:"product_url,omitempty"`

	// TotalSold is derived from sales at query time, never stored.
	TotalSold int `gorm:"-" json:"total_sold"`

	Batches  []*InventoryBatch `gorm:"foreignKey:ProductId" json:"batches,omitempty"`
	Equities []*ProductEquity  `gorm:"foreignKey:ProductId" json:"equities,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductEquity overrides one owner's global percentage for one product.
// At most one row per (product, owner) pair.
type ProductEquity struct {
	ID               int             `gorm:"primary_key" json:"id"`
	ProductId        int             `gorm:"not null;uniqueIndex:idx_product_owner,priority:1" json:"product_id"`
	OwnerId          int             `gorm:"not null;uniqueIndex:idx_product_owner,priority:2" json:"owner_id"`
	EquityPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"equity_percentage"`

	Owner *Owner `gorm:"foreignKey:OwnerId" json:"owner,omitempty"`
}

type NewProductEquityLine struct {
	OwnerId          int             `json:"owner_id" binding:"required"`
	EquityPercentage decimal.Decimal `json:"equity_percentage"`
}

type NewProduct struct {
	Name       string                  `json:"name" binding:"required"`
	Sku        string                  `json:"sku"`
	Price      decimal.Decimal         `json:"price"`
	CostPrice  decimal.Decimal         `json:"cost_price"`
	ProductUrl string                  `json:"product_url"`
	Equities   []*NewProductEquityLine `json:"equities"`
}

func (input *NewProduct) validate(ctx context.Context) error {
	if input.Price.IsNegative() || input.CostPrice.IsNegative() {
		return utils.NewValidationError("price and cost price must not be negative")
	}
	for _, eq := range input.Equities {
		if eq.EquityPercentage.IsNegative() || eq.EquityPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return utils.NewValidationError("equity percentage must be between 0 and 100")
		}
		if _, err := GetOwner(ctx, eq.OwnerId); err != nil {
			return err
		}
	}
	return nil
}

// CreateProduct creates the product plus any initial per-owner equity
// overrides in one transaction. A missing SKU gets a generated one.
func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	sku := input.Sku
	if sku == "" {
		sku = utils.GenerateSku()
	}

	db := config.GetDB()

	var existing Product
	err := db.WithContext(ctx).Where("sku = ?", sku).First(&existing).Error
	if err == nil {
		return nil, utils.NewConflictError("product with SKU %s already exists", sku)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &Product{
		Name:       input.Name,
		Sku:        sku,
		Price:      input.Price,
		CostPrice:  input.CostPrice,
		ProductUrl: input.ProductUrl,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			if isDuplicateKeyError(err) {
				return utils.NewConflictError("product with SKU %s already exists", sku)
			}
			return err
		}
		for _, eq := range input.Equities {
			equity := &ProductEquity{
				ProductId:        product.ID,
				OwnerId:          eq.OwnerId,
				EquityPercentage: eq.EquityPercentage,
			}
			if err := tx.Create(equity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	db := config.GetDB()
	err := db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts lists products with their equities, batches and derived
// total_sold (sum of signed sale quantities).
func GetProducts(ctx context.Context, skip, limit int) ([]*Product, error) {
	skip, limit = utils.NormalizeSkipLimit(skip, limit)

	var products []*Product
	db := config.GetDB()
	err := db.WithContext(ctx).
		Preload("Equities.Owner").
		Preload("Batches").
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	type soldRow struct {
		ProductId int `gorm:"column:product_id"`
		TotalSold int `gorm:"column:total_sold"`
	}
	var rows []soldRow
	err = db.WithContext(ctx).
		Model(&Sale{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total_sold").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	soldByProduct := make(map[int]int, len(rows))
	for _, r := range rows {
		soldByProduct[r.ProductId] = r.TotalSold
	}
	for _, p := range products {
		p.TotalSold = soldByProduct[p.ID]
	}
	return products, nil
}
