package models

import "github.com/shopspring/decimal"

// ABCEntry is one row of the ABC classification: products ranked by extended
// stock value with a running cumulative share and a class letter.
type ABCEntry struct {
	ProductID         int64           `json:"product_id"`
	Name              string          `json:"name"`
	CurrentQty        int             `json:"current_qty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	StockValue        decimal.Decimal `json:"stock_value"`
	CumulativePercent decimal.Decimal `json:"cumulative_percent"`
	Class             string          `json:"class"`
}

// QuoteGroup is one group of the closing report: quote lines aggregated by
// quote number or supplier. Supplier and Status carry the first-seen values
// within the group.
type QuoteGroup struct {
	Key        string          `json:"key"`
	Supplier   string          `json:"supplier"`
	Status     string          `json:"status"`
	LineCount  int             `json:"line_count"`
	TotalQty   int             `json:"total_qty"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ClosingReport aggregates quote lines into groups plus grand totals. The
// grand totals always equal the flat sums over the input lines, whatever the
// grouping key.
type ClosingReport struct {
	GroupBy    string          `json:"group_by"`
	Groups     []QuoteGroup    `json:"groups"`
	LineCount  int             `json:"line_count"`
	TotalQty   int             `json:"total_qty"`
	TotalValue decimal.Decimal `json:"total_value"`
}
