package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"estoque_backend/internal/models"
)

// ReceiptRepository defines the interface for receipt-line database operations.
// Receipt lines are immutable once written; corrections are made by recording
// further deliveries, so there is no update or delete.
type ReceiptRepository interface {
	CreateReceiptLine(executor SQLExecutor, line *models.ReceiptLine) (int64, error)
	GetReceiptLines(quoteNumber *string, productID *int64, page, pageSize int) ([]models.ReceiptLine, int, error)
	GetDeliveredTotal(executor SQLExecutor, quoteLineID int64) (int, error)
}

type receiptRepository struct {
	db *sql.DB
}

// NewReceiptRepository creates a new instance of ReceiptRepository.
func NewReceiptRepository(db *sql.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceiptLine(executor SQLExecutor, line *models.ReceiptLine) (int64, error) {
	query := `INSERT INTO receipt_lines
	          (quote_line_id, quote_number, product_id, ordered_qty, delivered_qty, status, received_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	if line.ReceivedAt.IsZero() {
		line.ReceivedAt = currentTime
	}
	err := executor.QueryRow(query,
		line.QuoteLineID, line.QuoteNumber, line.ProductID,
		line.OrderedQty, line.DeliveredQty, line.Status, line.ReceivedAt, currentTime,
	).Scan(&line.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating receipt line: %v", ErrDatabaseError, err)
	}
	return line.ID, nil
}

func (r *receiptRepository) GetReceiptLines(quoteNumber *string, productID *int64, page, pageSize int) ([]models.ReceiptLine, int, error) {
	lines := []models.ReceiptLine{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    rl.id, rl.quote_line_id, rl.quote_number, rl.product_id, rl.ordered_qty,
	    rl.delivered_qty, rl.status, rl.received_at, rl.created_at,
	    p.name AS product_name,
	    COUNT(*) OVER() AS total_count
	  FROM receipt_lines rl
	  JOIN products p ON rl.product_id = p.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if quoteNumber != nil && *quoteNumber != "" {
		conditions = append(conditions, fmt.Sprintf("rl.quote_number = $%d", argCount))
		args = append(args, *quoteNumber)
		argCount++
	}
	if productID != nil {
		conditions = append(conditions, fmt.Sprintf("rl.product_id = $%d", argCount))
		args = append(args, *productID)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY rl.received_at DESC, rl.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting receipt lines: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.ReceiptLine
		if err := rows.Scan(
			&line.ID, &line.QuoteLineID, &line.QuoteNumber, &line.ProductID, &line.OrderedQty,
			&line.DeliveredQty, &line.Status, &line.ReceivedAt, &line.CreatedAt,
			&line.ProductName, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning receipt line: %v", ErrDatabaseError, err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating receipt lines: %v", ErrDatabaseError, err)
	}
	return lines, totalCount, nil
}

// GetDeliveredTotal sums everything delivered so far against one quote line.
// Runs on the executor so the receipt transaction sees its own view.
func (r *receiptRepository) GetDeliveredTotal(executor SQLExecutor, quoteLineID int64) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(delivered_qty), 0) FROM receipt_lines WHERE quote_line_id = $1`
	if err := executor.QueryRow(query, quoteLineID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing deliveries for quote line %d: %v", ErrDatabaseError, quoteLineID, err)
	}
	return total, nil
}
