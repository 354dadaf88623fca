package services

import (
	"errors"
	"testing"

	"estoque_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyABC(t *testing.T) {
	// Stock values 800, 150 and 50: cumulative shares land exactly on the
	// 80 and 95 boundaries, which belong to the lower class.
	products := []models.Product{
		testProduct(1, "Luvas M", "Acme", "EPI", 50, 0, "1.00"),      // 50
		testProduct(2, "Shampoo 500ml", "Acme", "Higiene", 8, 0, "100.00"), // 800
		testProduct(3, "Papel Toalha", "Beta", "Higiene", 30, 0, "5.00"),   // 150
	}

	entries, err := ClassifyABC(products)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(2), entries[0].ProductID)
	assert.Equal(t, "A", entries[0].Class)
	assert.True(t, entries[0].CumulativePercent.Equal(decimal.NewFromInt(80)))

	assert.Equal(t, int64(3), entries[1].ProductID)
	assert.Equal(t, "B", entries[1].Class)
	assert.True(t, entries[1].CumulativePercent.Equal(decimal.NewFromInt(95)))

	assert.Equal(t, int64(1), entries[2].ProductID)
	assert.Equal(t, "C", entries[2].Class)
	assert.True(t, entries[2].CumulativePercent.Equal(decimal.NewFromInt(100)))
}

func TestClassifyABCCumulativePercentIsMonotonic(t *testing.T) {
	products := []models.Product{
		testProduct(1, "P1", "Acme", "G", 3, 0, "7.00"),
		testProduct(2, "P2", "Acme", "G", 11, 0, "2.50"),
		testProduct(3, "P3", "Acme", "G", 1, 0, "40.00"),
		testProduct(4, "P4", "Acme", "G", 6, 0, "1.00"),
	}

	entries, err := ClassifyABC(products)
	require.NoError(t, err)

	previous := decimal.Zero
	for _, entry := range entries {
		assert.True(t, entry.CumulativePercent.GreaterThanOrEqual(previous),
			"cumulative percent dropped at product %d", entry.ProductID)
		previous = entry.CumulativePercent
	}
	assert.True(t, previous.Equal(decimal.NewFromInt(100)))
}

func TestClassifyABCEmptySnapshot(t *testing.T) {
	entries, err := ClassifyABC(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClassifyABCZeroTotalValue(t *testing.T) {
	products := []models.Product{
		testProduct(1, "P1", "Acme", "G", 0, 0, "10.00"),
		testProduct(2, "P2", "Acme", "G", 5, 0, "0.00"),
	}

	entries, err := ClassifyABC(products)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "C", entry.Class)
		assert.True(t, entry.CumulativePercent.IsZero())
	}
}

func TestClassifyABCTiesKeepSnapshotOrder(t *testing.T) {
	products := []models.Product{
		testProduct(1, "P1", "Acme", "G", 10, 0, "5.00"),
		testProduct(2, "P2", "Acme", "G", 5, 0, "10.00"),
		testProduct(3, "P3", "Acme", "G", 50, 0, "1.00"),
	}

	entries, err := ClassifyABC(products)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(1), entries[0].ProductID)
	assert.Equal(t, int64(2), entries[1].ProductID)
	assert.Equal(t, int64(3), entries[2].ProductID)
}

func TestClassifyABCRejectsIncompleteRows(t *testing.T) {
	missingQty := testProduct(1, "P1", "Acme", "G", 0, 0, "10.00")
	missingQty.CurrentQty = nil
	_, err := ClassifyABC([]models.Product{missingQty})
	assert.True(t, errors.Is(err, ErrValidation))

	missingPrice := testProduct(2, "P2", "Acme", "G", 5, 0, "10.00")
	missingPrice.UnitPrice = nil
	_, err = ClassifyABC([]models.Product{missingPrice})
	assert.True(t, errors.Is(err, ErrValidation))
}
