package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"estoque_backend/internal/models"
	"estoque_backend/pkg/utils"
)

// QuoteRepository defines the interface for quote-line database operations.
type QuoteRepository interface {
	CreateQuoteLine(executor SQLExecutor, line *models.QuoteLine) (int64, error)
	GetQuoteLineByID(id int64) (*models.QuoteLine, error)
	GetQuoteLines(filters models.QuoteFilters) ([]models.QuoteLine, int, error)
	GetLinesByQuoteNumber(quoteNumber string) ([]models.QuoteLine, error)
	UpdateQuoteLineStatus(executor SQLExecutor, id int64, status string) error
	DeleteQuoteLine(executor SQLExecutor, id int64) error
}

type quoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new instance of QuoteRepository.
func NewQuoteRepository(db *sql.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

const quoteLineColumns = `ql.id, ql.quote_number, ql.product_id, ql.requester, ql.supplier,
	    ql.quantity, ql.unit_price, ql.extended_value, ql.status, ql.reason,
	    ql.created_at, ql.updated_at, p.name AS product_name`

func scanQuoteLine(row interface{ Scan(...interface{}) error }, line *models.QuoteLine) error {
	return row.Scan(
		&line.ID, &line.QuoteNumber, &line.ProductID, &line.Requester, &line.Supplier,
		&line.Quantity, &line.UnitPrice, &line.ExtendedValue, &line.Status, &line.Reason,
		&line.CreatedAt, &line.UpdatedAt, &line.ProductName,
	)
}

func (r *quoteRepository) CreateQuoteLine(executor SQLExecutor, line *models.QuoteLine) (int64, error) {
	query := `INSERT INTO quote_lines
	          (quote_number, product_id, requester, supplier, quantity, unit_price,
	           extended_value, status, reason, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		line.QuoteNumber, line.ProductID, line.Requester, line.Supplier,
		line.Quantity, line.UnitPrice, line.ExtendedValue, line.Status, line.Reason,
		currentTime, currentTime,
	).Scan(&line.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating quote line for product %d: %v", ErrDatabaseError, line.ProductID, err)
	}
	return line.ID, nil
}

func (r *quoteRepository) GetQuoteLineByID(id int64) (*models.QuoteLine, error) {
	line := &models.QuoteLine{}
	query := `SELECT ` + quoteLineColumns + `
	          FROM quote_lines ql
	          JOIN products p ON ql.product_id = p.id
	          WHERE ql.id = $1`
	err := scanQuoteLine(r.db.QueryRow(query, id), line)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting quote line by ID %d: %v", ErrDatabaseError, id, err)
	}
	return line, nil
}

func (r *quoteRepository) GetQuoteLines(filters models.QuoteFilters) ([]models.QuoteLine, int, error) {
	lines := []models.QuoteLine{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + quoteLineColumns + `, COUNT(*) OVER() AS total_count
	  FROM quote_lines ql
	  JOIN products p ON ql.product_id = p.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.QuoteNumber != nil && *filters.QuoteNumber != "" {
		conditions = append(conditions, fmt.Sprintf("ql.quote_number = $%d", argCount))
		args = append(args, *filters.QuoteNumber)
		argCount++
	}
	if filters.Supplier != nil && *filters.Supplier != "" {
		conditions = append(conditions, fmt.Sprintf("ql.supplier = $%d", argCount))
		args = append(args, *filters.Supplier)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ql.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.StartDate != nil && *filters.StartDate != "" {
		if start, err := utils.ParseBRDate(*filters.StartDate); err == nil {
			conditions = append(conditions, fmt.Sprintf("ql.created_at >= $%d", argCount))
			args = append(args, start)
			argCount++
		}
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		if end, err := utils.ParseBRDate(*filters.EndDate); err == nil {
			conditions = append(conditions, fmt.Sprintf("ql.created_at < $%d", argCount))
			args = append(args, end.AddDate(0, 0, 1)) // inclusive end day
			argCount++
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY ql.created_at, ql.id")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting quote lines: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.QuoteLine
		if err := rows.Scan(
			&line.ID, &line.QuoteNumber, &line.ProductID, &line.Requester, &line.Supplier,
			&line.Quantity, &line.UnitPrice, &line.ExtendedValue, &line.Status, &line.Reason,
			&line.CreatedAt, &line.UpdatedAt, &line.ProductName, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning quote line: %v", ErrDatabaseError, err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating quote lines: %v", ErrDatabaseError, err)
	}
	return lines, totalCount, nil
}

func (r *quoteRepository) GetLinesByQuoteNumber(quoteNumber string) ([]models.QuoteLine, error) {
	lines := []models.QuoteLine{}
	query := `SELECT ` + quoteLineColumns + `
	          FROM quote_lines ql
	          JOIN products p ON ql.product_id = p.id
	          WHERE ql.quote_number = $1
	          ORDER BY ql.id`
	rows, err := r.db.Query(query, quoteNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: getting lines for quote %s: %v", ErrDatabaseError, quoteNumber, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.QuoteLine
		if err := scanQuoteLine(rows, &line); err != nil {
			return nil, fmt.Errorf("%w: scanning quote line: %v", ErrDatabaseError, err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating quote lines: %v", ErrDatabaseError, err)
	}
	return lines, nil
}

func (r *quoteRepository) UpdateQuoteLineStatus(executor SQLExecutor, id int64, status string) error {
	result, err := executor.Exec(
		`UPDATE quote_lines SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating status of quote line %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *quoteRepository) DeleteQuoteLine(executor SQLExecutor, id int64) error {
	// Receipt lines reference quote lines; refuse to orphan them.
	var count int
	if err := executor.QueryRow("SELECT COUNT(*) FROM receipt_lines WHERE quote_line_id = $1", id).Scan(&count); err != nil {
		return fmt.Errorf("%w: checking receipts for quote line %d: %v", ErrDatabaseError, id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: quote line %d has %d recorded receipt(s)", ErrDatabaseError, id, count)
	}

	result, err := executor.Exec(`DELETE FROM quote_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting quote line %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
