package models

import "github.com/shopspring/decimal"

// PurchaseNeedLine is one row of the purchasing-need computation: a product
// whose stock fell below its minimum (plus safety margin), annotated with the
// quantity to reorder and the extended value of that order. Derived, never
// persisted.
type PurchaseNeedLine struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Reference     *string         `json:"reference,omitempty"`
	Supplier      string          `json:"supplier"`
	CategoryGroup string          `json:"category_group"`
	CurrentQty    int             `json:"current_qty"`
	MinQty        int             `json:"min_qty"`
	NeedQty       int             `json:"need_qty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ExtendedValue decimal.Decimal `json:"extended_value"`
}

// PurchaseNeedReport is the full computation result. Totals are recomputed
// from the qualifying lines on every run, never cached.
type PurchaseNeedReport struct {
	Lines      []PurchaseNeedLine `json:"lines"`
	LineCount  int                `json:"line_count"`
	TotalQty   int                `json:"total_qty"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Margin     int                `json:"safety_margin"`
}
