package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stocked product as registered through the product form.
// UnitPrice, CurrentQty and MinQty are pointers because imported rows may
// arrive with gaps; the purchasing calculator rejects such rows explicitly
// instead of treating them as zero.
type Product struct {
	ID            int64            `json:"id" db:"id"`
	Name          string           `json:"name" db:"name" binding:"required"`
	Reference     *string          `json:"reference,omitempty" db:"reference"`
	SKU           *string          `json:"sku,omitempty" db:"sku"`
	Barcode       *string          `json:"barcode,omitempty" db:"barcode"`
	Brand         *string          `json:"brand,omitempty" db:"brand"`
	CategoryGroup string           `json:"category_group" db:"category_group"`
	Supplier      string           `json:"supplier" db:"supplier"`
	Description   *string          `json:"description,omitempty" db:"description"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty" db:"unit_price"`
	CurrentQty    *int             `json:"current_qty,omitempty" db:"current_qty"`
	MinQty        *int             `json:"min_qty,omitempty" db:"min_qty"`
	Location      *string          `json:"location,omitempty" db:"location"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// ProductFilters defines the available filters for querying products.
// Used by both the service and repository layers.
type ProductFilters struct {
	Search        *string `form:"search"` // matches name, reference, SKU or barcode
	Supplier      *string `form:"supplier"`
	CategoryGroup *string `form:"category_group"`
	Brand         *string `form:"brand"`
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}

// StockRow is a product annotated with its extended stock value, as shown on
// the stock listing screen. Value is zero when price or quantity is missing.
type StockRow struct {
	Product    Product         `json:"product"`
	StockValue decimal.Decimal `json:"stock_value"`
}
