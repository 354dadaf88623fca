package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote line status values. A line starts pending and is driven forward by
// the receipt process only.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusPartial  = "partial"
	QuoteStatusComplete = "complete"
)

// QuoteLine is one purchase request line. Lines sharing a QuoteNumber form
// one quote (orçamento). UnitPrice is a snapshot taken at generation time;
// ExtendedValue always equals Quantity * UnitPrice at creation.
type QuoteLine struct {
	ID            int64           `json:"id" db:"id"`
	QuoteNumber   string          `json:"quote_number" db:"quote_number"`
	ProductID     int64           `json:"product_id" db:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	Requester     string          `json:"requester" db:"requester"`
	Supplier      string          `json:"supplier" db:"supplier"`
	Quantity      int             `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price" db:"unit_price"`
	ExtendedValue decimal.Decimal `json:"extended_value" db:"extended_value"`
	Status        string          `json:"status" db:"status"`
	Reason        *string         `json:"reason,omitempty" db:"reason"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// QuoteFilters defines the available filters for querying quote lines.
type QuoteFilters struct {
	QuoteNumber *string `form:"quote_number"`
	Supplier    *string `form:"supplier"`
	Status      *string `form:"status"`
	StartDate   *string `form:"start_date"` // dd/mm/yyyy
	EndDate     *string `form:"end_date"`   // dd/mm/yyyy
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}
