package models

import "time"

// ReceiptLine records a delivery (entrada) against a quote line. Status is
// derived from the cumulative delivered quantity, never set by the caller:
// complete when delivered == ordered, partial when some but not all arrived,
// pending when nothing has.
type ReceiptLine struct {
	ID           int64     `json:"id" db:"id"`
	QuoteLineID  int64     `json:"quote_line_id" db:"quote_line_id"`
	QuoteNumber  string    `json:"quote_number" db:"quote_number"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	OrderedQty   int       `json:"ordered_qty" db:"ordered_qty"`
	DeliveredQty int       `json:"delivered_qty" db:"delivered_qty"`
	Status       string    `json:"status" db:"status"`
	ReceivedAt   time.Time `json:"received_at" db:"received_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
