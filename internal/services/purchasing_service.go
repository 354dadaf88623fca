package services

import (
	"errors"
	"fmt"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"
	"estoque_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// FilterAll is the sentinel that bypasses a supplier or category filter.
const FilterAll = "all"

// DefaultSafetyMargin is the number of extra units requested on top of the
// minimum threshold. The earlier spreadsheet versions disagreed on 0 vs 2;
// 2 is the default here and the value is editable through the
// purchase_safety_margin application setting.
const DefaultSafetyMargin = 2

// PurchaseNeedOptions controls one purchasing-need computation.
type PurchaseNeedOptions struct {
	Supplier      string // exact match, FilterAll or empty bypasses
	CategoryGroup string // exact match, FilterAll or empty bypasses
	SafetyMargin  int
}

// ComputePurchaseNeeds derives the purchase-need lines from a product
// snapshot: every product whose stock is below minimum + margin, with the
// shortfall quantity and its extended value. The input is never mutated and
// the totals are summed from the qualifying lines.
func ComputePurchaseNeeds(products []models.Product, opts PurchaseNeedOptions) (*models.PurchaseNeedReport, error) {
	report := &models.PurchaseNeedReport{
		Lines:      []models.PurchaseNeedLine{},
		TotalValue: decimal.Zero,
		Margin:     opts.SafetyMargin,
	}

	for _, p := range products {
		if !filterMatch(opts.Supplier, p.Supplier) || !filterMatch(opts.CategoryGroup, p.CategoryGroup) {
			continue
		}
		if p.CurrentQty == nil {
			return nil, fmt.Errorf("%w: product %d (%s) has no current quantity", ErrValidation, p.ID, p.Name)
		}
		if p.MinQty == nil {
			return nil, fmt.Errorf("%w: product %d (%s) has no minimum quantity", ErrValidation, p.ID, p.Name)
		}
		if p.UnitPrice == nil {
			return nil, fmt.Errorf("%w: product %d (%s) has no unit price", ErrValidation, p.ID, p.Name)
		}
		if p.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: product %d (%s) has a negative unit price", ErrValidation, p.ID, p.Name)
		}

		need := *p.MinQty + opts.SafetyMargin - *p.CurrentQty
		if need <= 0 {
			continue
		}

		extended := p.UnitPrice.Mul(decimal.NewFromInt(int64(need)))
		report.Lines = append(report.Lines, models.PurchaseNeedLine{
			ProductID:     p.ID,
			Name:          p.Name,
			Reference:     p.Reference,
			Supplier:      p.Supplier,
			CategoryGroup: p.CategoryGroup,
			CurrentQty:    *p.CurrentQty,
			MinQty:        *p.MinQty,
			NeedQty:       need,
			UnitPrice:     *p.UnitPrice,
			ExtendedValue: extended,
		})
		report.TotalQty += need
		report.TotalValue = report.TotalValue.Add(extended)
	}

	report.LineCount = len(report.Lines)
	return report, nil
}

func filterMatch(filter, value string) bool {
	if filter == "" || utils.EqualFold(filter, FilterAll) {
		return true
	}
	return utils.EqualFold(filter, value)
}

// --- PurchasingService Interface ---
type PurchasingService interface {
	ComputeNeeds(supplier, categoryGroup string) (*models.PurchaseNeedReport, error)
	SafetyMargin() int
}

type purchasingService struct {
	productRepo repositories.ProductRepository
	settingRepo repositories.SettingRepository
}

// NewPurchasingService creates a new instance of PurchasingService.
func NewPurchasingService(pr repositories.ProductRepository, sr repositories.SettingRepository) PurchasingService {
	return &purchasingService{productRepo: pr, settingRepo: sr}
}

// ComputeNeeds loads the current product snapshot and runs the pure
// computation with the configured safety margin.
func (s *purchasingService) ComputeNeeds(supplier, categoryGroup string) (*models.PurchaseNeedReport, error) {
	products, err := s.productRepo.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot: %w", err)
	}
	return ComputePurchaseNeeds(products, PurchaseNeedOptions{
		Supplier:      supplier,
		CategoryGroup: categoryGroup,
		SafetyMargin:  s.SafetyMargin(),
	})
}

// SafetyMargin reads the configured margin, falling back to the default when
// the setting is absent or unusable.
func (s *purchasingService) SafetyMargin() int {
	return settingInt(s.settingRepo, models.SettingPurchaseSafetyMargin, DefaultSafetyMargin)
}

// settingInt resolves an integer application setting with a fallback.
// A negative stored value is treated as unusable.
func settingInt(repo repositories.SettingRepository, key string, fallback int) int {
	setting, err := repo.GetByKey(key)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			utils.LogError(err, "Failed to read setting "+key)
		}
		return fallback
	}
	v, err := utils.StrToInt(setting.SettingValue)
	if err != nil || v < 0 {
		utils.LogError(err, "Setting "+key+" is not a usable integer, using default")
		return fallback
	}
	return v
}
