package services

import (
	"fmt"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// Grouping keys accepted by the closing report.
const (
	GroupByQuoteNumber = "quote_number"
	GroupBySupplier    = "supplier"
)

// AggregateQuoteLines groups quote lines by quote number or supplier,
// preserving first-occurrence order of the keys. Supplier and status per
// group are the first-seen values; sums are plain folds, so the grand totals
// always equal the flat sums over the input regardless of grouping. When
// knownProducts is non-nil, a line referencing a product id outside it fails
// with ErrNotFound rather than being dropped or zero-filled.
func AggregateQuoteLines(lines []models.QuoteLine, groupBy string, knownProducts map[int64]struct{}) (*models.ClosingReport, error) {
	if groupBy != GroupByQuoteNumber && groupBy != GroupBySupplier {
		return nil, fmt.Errorf("%w: unknown grouping key %q", ErrValidation, groupBy)
	}

	report := &models.ClosingReport{
		GroupBy:    groupBy,
		Groups:     []models.QuoteGroup{},
		TotalValue: decimal.Zero,
	}
	index := map[string]int{}

	for _, line := range lines {
		if knownProducts != nil {
			if _, ok := knownProducts[line.ProductID]; !ok {
				return nil, fmt.Errorf("%w: quote line %d references unknown product %d", ErrNotFound, line.ID, line.ProductID)
			}
		}

		key := line.QuoteNumber
		if groupBy == GroupBySupplier {
			key = line.Supplier
		}

		pos, ok := index[key]
		if !ok {
			pos = len(report.Groups)
			index[key] = pos
			report.Groups = append(report.Groups, models.QuoteGroup{
				Key:        key,
				Supplier:   line.Supplier,
				Status:     line.Status,
				TotalValue: decimal.Zero,
			})
		}

		group := &report.Groups[pos]
		group.LineCount++
		group.TotalQty += line.Quantity
		group.TotalValue = group.TotalValue.Add(line.ExtendedValue)

		report.LineCount++
		report.TotalQty += line.Quantity
		report.TotalValue = report.TotalValue.Add(line.ExtendedValue)
	}

	return report, nil
}

// --- ReportService Interface ---
type ReportService interface {
	ClosingReport(filters models.QuoteFilters, groupBy string) (*models.ClosingReport, error)
}

type reportService struct {
	quoteRepo   repositories.QuoteRepository
	productRepo repositories.ProductRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(qr repositories.QuoteRepository, pr repositories.ProductRepository) ReportService {
	return &reportService{quoteRepo: qr, productRepo: pr}
}

// ClosingReport loads the filtered quote lines plus the product snapshot and
// runs the pure aggregation. Filtering happens in the store, so a quote
// number or supplier with no matching lines simply produces no group.
func (s *reportService) ClosingReport(filters models.QuoteFilters, groupBy string) (*models.ClosingReport, error) {
	if groupBy == "" {
		groupBy = GroupByQuoteNumber
	}
	if err := validateQuoteFilterDates(filters); err != nil {
		return nil, err
	}
	// The report always covers the full filtered set.
	filters.Page = 1
	filters.PageSize = 1 << 30

	lines, _, err := s.quoteRepo.GetQuoteLines(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote lines for report: %w", err)
	}

	products, err := s.productRepo.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot for report: %w", err)
	}
	known := make(map[int64]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	return AggregateQuoteLines(lines, groupBy, known)
}
