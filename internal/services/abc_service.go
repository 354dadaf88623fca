package services

import (
	"fmt"
	"sort"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	abcBoundaryA = decimal.NewFromInt(80)
	abcBoundaryB = decimal.NewFromInt(95)
	hundred      = decimal.NewFromInt(100)
)

// ClassifyABC ranks a product snapshot by extended stock value (quantity x
// unit price) descending and assigns each product a class by cumulative value
// share: A up to 80%, B up to 95%, C beyond. Both boundaries are inclusive
// to the lower class. Ties keep the snapshot's original order. When the total
// value is zero every product is class C at 0%, so an all-empty warehouse
// never divides by zero.
func ClassifyABC(products []models.Product) ([]models.ABCEntry, error) {
	entries := make([]models.ABCEntry, 0, len(products))
	total := decimal.Zero

	for _, p := range products {
		if p.CurrentQty == nil {
			return nil, fmt.Errorf("%w: product %d (%s) has no current quantity", ErrValidation, p.ID, p.Name)
		}
		if p.UnitPrice == nil {
			return nil, fmt.Errorf("%w: product %d (%s) has no unit price", ErrValidation, p.ID, p.Name)
		}
		if p.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: product %d (%s) has a negative unit price", ErrValidation, p.ID, p.Name)
		}
		value := p.UnitPrice.Mul(decimal.NewFromInt(int64(*p.CurrentQty)))
		entries = append(entries, models.ABCEntry{
			ProductID:  p.ID,
			Name:       p.Name,
			CurrentQty: *p.CurrentQty,
			UnitPrice:  *p.UnitPrice,
			StockValue: value,
		})
		total = total.Add(value)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StockValue.GreaterThan(entries[j].StockValue)
	})

	running := decimal.Zero
	for i := range entries {
		if total.IsZero() {
			entries[i].CumulativePercent = decimal.Zero
			entries[i].Class = "C"
			continue
		}
		running = running.Add(entries[i].StockValue)
		percent := running.Mul(hundred).Div(total)
		entries[i].CumulativePercent = percent
		switch {
		case percent.LessThanOrEqual(abcBoundaryA):
			entries[i].Class = "A"
		case percent.LessThanOrEqual(abcBoundaryB):
			entries[i].Class = "B"
		default:
			entries[i].Class = "C"
		}
	}

	return entries, nil
}

// --- ABCService Interface ---
type ABCService interface {
	Classify() ([]models.ABCEntry, error)
}

type abcService struct {
	productRepo repositories.ProductRepository
}

// NewABCService creates a new instance of ABCService.
func NewABCService(pr repositories.ProductRepository) ABCService {
	return &abcService{productRepo: pr}
}

func (s *abcService) Classify() ([]models.ABCEntry, error) {
	products, err := s.productRepo.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot: %w", err)
	}
	return ClassifyABC(products)
}
