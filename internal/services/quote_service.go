package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"
	"estoque_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// GenerateQuoteRequest turns a confirmed purchasing round into quote lines.
// The selection mirrors the purchase-need filters; ProductIDs optionally
// narrows the round to a subset of the qualifying products.
type GenerateQuoteRequest struct {
	Requester     string  `json:"requester" binding:"required"`
	Supplier      string  `json:"supplier"`       // FilterAll or empty keeps every supplier
	CategoryGroup string  `json:"category_group"` // FilterAll or empty keeps every group
	Reason        *string `json:"reason"`
	ProductIDs    []int64 `json:"product_ids"`
}

// GeneratedQuote is the outcome of one purchasing round.
type GeneratedQuote struct {
	QuoteNumber string             `json:"quote_number"`
	Lines       []models.QuoteLine `json:"lines"`
	TotalQty    int                `json:"total_qty"`
	TotalValue  decimal.Decimal    `json:"total_value"`
}

// --- QuoteService Interface ---
type QuoteService interface {
	GenerateQuote(req GenerateQuoteRequest) (*GeneratedQuote, error)
	GetQuoteLines(filters models.QuoteFilters) ([]models.QuoteLine, int, error)
	GetQuoteByNumber(quoteNumber string) (*GeneratedQuote, error)
	DeleteQuoteLine(id int64) error
}

type quoteService struct {
	quoteRepo     repositories.QuoteRepository
	purchasingSvc PurchasingService
	db            *sql.DB
}

// NewQuoteService creates a new instance of QuoteService.
func NewQuoteService(qr repositories.QuoteRepository, ps PurchasingService, db *sql.DB) QuoteService {
	return &quoteService{quoteRepo: qr, purchasingSvc: ps, db: db}
}

// newQuoteNumber builds an external quote reference. The uuid fragment keeps
// numbers unique even when two rounds run on the same day.
func newQuoteNumber(now time.Time) string {
	return fmt.Sprintf("ORC-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

// GenerateQuote recomputes the purchase needs and persists one quote line per
// qualifying product inside a transaction, snapshotting the current unit
// price. Extended value is computed here, once, so the creation-time
// invariant quantity * price always holds.
func (s *quoteService) GenerateQuote(req GenerateQuoteRequest) (*GeneratedQuote, error) {
	if strings.TrimSpace(req.Requester) == "" {
		return nil, fmt.Errorf("%w: requester cannot be empty", ErrValidation)
	}

	needs, err := s.purchasingSvc.ComputeNeeds(req.Supplier, req.CategoryGroup)
	if err != nil {
		return nil, err
	}

	lines := needs.Lines
	if len(req.ProductIDs) > 0 {
		wanted := make(map[int64]struct{}, len(req.ProductIDs))
		for _, id := range req.ProductIDs {
			wanted[id] = struct{}{}
		}
		filtered := lines[:0:0]
		for _, line := range lines {
			if _, ok := wanted[line.ProductID]; ok {
				filtered = append(filtered, line)
			}
		}
		lines = filtered
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no products currently need purchasing for this selection", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	quoteNumber := newQuoteNumber(now)
	result := &GeneratedQuote{QuoteNumber: quoteNumber, TotalValue: decimal.Zero}

	for _, need := range lines {
		quoteLine := models.QuoteLine{
			QuoteNumber:   quoteNumber,
			ProductID:     need.ProductID,
			ProductName:   need.Name,
			Requester:     strings.TrimSpace(req.Requester),
			Supplier:      need.Supplier,
			Quantity:      need.NeedQty,
			UnitPrice:     need.UnitPrice,
			ExtendedValue: need.UnitPrice.Mul(decimal.NewFromInt(int64(need.NeedQty))),
			Status:        models.QuoteStatusPending,
			Reason:        req.Reason,
		}
		if _, err := s.quoteRepo.CreateQuoteLine(tx, &quoteLine); err != nil {
			return nil, fmt.Errorf("failed to create quote line for product %d: %w", need.ProductID, err)
		}
		result.Lines = append(result.Lines, quoteLine)
		result.TotalQty += quoteLine.Quantity
		result.TotalValue = result.TotalValue.Add(quoteLine.ExtendedValue)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit quote transaction: %w", err)
	}

	utils.LogInfo("Quote generated", map[string]interface{}{
		"quote_number": quoteNumber,
		"lines":        len(result.Lines),
	})
	return result, nil
}

// validateQuoteFilterDates rejects unparseable range bounds. A typo'd date
// must fail the request, not silently widen it to the full history.
func validateQuoteFilterDates(filters models.QuoteFilters) error {
	if filters.StartDate != nil && *filters.StartDate != "" {
		if _, err := utils.ParseBRDate(*filters.StartDate); err != nil {
			return fmt.Errorf("%w: invalid start_date %q, expected dd/mm/yyyy", ErrValidation, *filters.StartDate)
		}
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		if _, err := utils.ParseBRDate(*filters.EndDate); err != nil {
			return fmt.Errorf("%w: invalid end_date %q, expected dd/mm/yyyy", ErrValidation, *filters.EndDate)
		}
	}
	return nil
}

func (s *quoteService) GetQuoteLines(filters models.QuoteFilters) ([]models.QuoteLine, int, error) {
	if err := validateQuoteFilterDates(filters); err != nil {
		return nil, 0, err
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	lines, totalCount, err := s.quoteRepo.GetQuoteLines(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get quote lines: %w", err)
	}
	return lines, totalCount, nil
}

func (s *quoteService) GetQuoteByNumber(quoteNumber string) (*GeneratedQuote, error) {
	lines, err := s.quoteRepo.GetLinesByQuoteNumber(quoteNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote %s: %w", quoteNumber, err)
	}
	if len(lines) == 0 {
		return nil, ErrNotFound
	}
	result := &GeneratedQuote{QuoteNumber: quoteNumber, Lines: lines, TotalValue: decimal.Zero}
	for _, line := range lines {
		result.TotalQty += line.Quantity
		result.TotalValue = result.TotalValue.Add(line.ExtendedValue)
	}
	return result, nil
}

func (s *quoteService) DeleteQuoteLine(id int64) error {
	err := s.quoteRepo.DeleteQuoteLine(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete quote line: %w", err)
	}
	return nil
}
