package services

import (
	"errors"
	"testing"

	"estoque_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func testProduct(id int64, name, supplier, group string, current, min int, price string) models.Product {
	return models.Product{
		ID:            id,
		Name:          name,
		Supplier:      supplier,
		CategoryGroup: group,
		CurrentQty:    intPtr(current),
		MinQty:        intPtr(min),
		UnitPrice:     decPtr(price),
	}
}

func TestComputePurchaseNeeds(t *testing.T) {
	products := []models.Product{
		testProduct(1, "Shampoo 500ml", "Acme", "Higiene", 10, 5, "12.00"),
		testProduct(2, "Luvas M", "Acme", "EPI", 3, 8, "5.00"),
	}

	report, err := ComputePurchaseNeeds(products, PurchaseNeedOptions{SafetyMargin: 2})
	require.NoError(t, err)

	// 10 >= 5+2 keeps the first product out; 8+2-3 = 7 units of the second.
	require.Len(t, report.Lines, 1)
	line := report.Lines[0]
	assert.Equal(t, int64(2), line.ProductID)
	assert.Equal(t, 7, line.NeedQty)
	assert.True(t, line.ExtendedValue.Equal(decimal.RequireFromString("35.00")),
		"extended value = %s", line.ExtendedValue)

	assert.Equal(t, 1, report.LineCount)
	assert.Equal(t, 7, report.TotalQty)
	assert.True(t, report.TotalValue.Equal(decimal.RequireFromString("35.00")))
	assert.Equal(t, 2, report.Margin)
}

func TestComputePurchaseNeedsZeroMargin(t *testing.T) {
	products := []models.Product{
		testProduct(1, "Luvas M", "Acme", "EPI", 5, 5, "5.00"),
	}

	report, err := ComputePurchaseNeeds(products, PurchaseNeedOptions{SafetyMargin: 0})
	require.NoError(t, err)
	assert.Empty(t, report.Lines, "stock at exactly the minimum needs nothing with margin 0")

	report, err = ComputePurchaseNeeds(products, PurchaseNeedOptions{SafetyMargin: 2})
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, 2, report.Lines[0].NeedQty)
}

func TestComputePurchaseNeedsFilters(t *testing.T) {
	products := []models.Product{
		testProduct(1, "Shampoo 500ml", "Acme", "Higiene", 0, 5, "12.00"),
		testProduct(2, "Luvas M", "Beta", "EPI", 0, 5, "5.00"),
	}

	tests := []struct {
		name    string
		opts    PurchaseNeedOptions
		wantIDs []int64
	}{
		{"no filter keeps all", PurchaseNeedOptions{}, []int64{1, 2}},
		{"all sentinel keeps all", PurchaseNeedOptions{Supplier: "all", CategoryGroup: "ALL"}, []int64{1, 2}},
		{"supplier exact", PurchaseNeedOptions{Supplier: "Beta"}, []int64{2}},
		{"supplier case-insensitive", PurchaseNeedOptions{Supplier: "acme"}, []int64{1}},
		{"category group", PurchaseNeedOptions{CategoryGroup: "EPI"}, []int64{2}},
		{"no match", PurchaseNeedOptions{Supplier: "Gamma"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ComputePurchaseNeeds(products, tt.opts)
			require.NoError(t, err)
			ids := []int64{}
			for _, line := range report.Lines {
				ids = append(ids, line.ProductID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestComputePurchaseNeedsRejectsIncompleteRows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Product)
	}{
		{"missing current qty", func(p *models.Product) { p.CurrentQty = nil }},
		{"missing min qty", func(p *models.Product) { p.MinQty = nil }},
		{"missing unit price", func(p *models.Product) { p.UnitPrice = nil }},
		{"negative unit price", func(p *models.Product) { p.UnitPrice = decPtr("-1.00") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := testProduct(1, "Luvas M", "Acme", "EPI", 3, 8, "5.00")
			tt.mutate(&product)

			_, err := ComputePurchaseNeeds([]models.Product{product}, PurchaseNeedOptions{SafetyMargin: 2})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "expected validation error, got %v", err)
		})
	}
}

func TestComputePurchaseNeedsSkipsFilteredIncompleteRows(t *testing.T) {
	// A broken row outside the filter scope must not block the computation.
	broken := testProduct(1, "Luvas M", "Beta", "EPI", 0, 5, "5.00")
	broken.UnitPrice = nil
	products := []models.Product{
		broken,
		testProduct(2, "Shampoo 500ml", "Acme", "Higiene", 0, 5, "12.00"),
	}

	report, err := ComputePurchaseNeeds(products, PurchaseNeedOptions{Supplier: "Acme", SafetyMargin: 2})
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, int64(2), report.Lines[0].ProductID)
}

func TestComputePurchaseNeedsDoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		testProduct(1, "Luvas M", "Acme", "EPI", 3, 8, "5.00"),
	}
	before := *products[0].CurrentQty

	_, err := ComputePurchaseNeeds(products, PurchaseNeedOptions{SafetyMargin: 2})
	require.NoError(t, err)
	assert.Equal(t, before, *products[0].CurrentQty)
}
