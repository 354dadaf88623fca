package services

import (
	"errors"
	"testing"

	"estoque_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuoteLine(id int64, quoteNumber string, productID int64, supplier string, qty int, price string) models.QuoteLine {
	unitPrice := decimal.RequireFromString(price)
	return models.QuoteLine{
		ID:            id,
		QuoteNumber:   quoteNumber,
		ProductID:     productID,
		Supplier:      supplier,
		Quantity:      qty,
		UnitPrice:     unitPrice,
		ExtendedValue: unitPrice.Mul(decimal.NewFromInt(int64(qty))),
		Status:        models.QuoteStatusPending,
	}
}

func TestAggregateQuoteLinesByQuoteNumber(t *testing.T) {
	lines := []models.QuoteLine{
		testQuoteLine(1, "ORC-1", 10, "Acme", 3, "10.00"),
		testQuoteLine(2, "ORC-1", 11, "Acme", 4, "10.00"),
		testQuoteLine(3, "ORC-2", 12, "Beta", 2, "7.50"),
	}

	report, err := AggregateQuoteLines(lines, GroupByQuoteNumber, nil)
	require.NoError(t, err)

	require.Len(t, report.Groups, 2)
	first := report.Groups[0]
	assert.Equal(t, "ORC-1", first.Key)
	assert.Equal(t, 2, first.LineCount)
	assert.Equal(t, 7, first.TotalQty)
	assert.True(t, first.TotalValue.Equal(decimal.RequireFromString("70.00")),
		"group value = %s", first.TotalValue)

	assert.Equal(t, 3, report.LineCount)
	assert.Equal(t, 9, report.TotalQty)
	assert.True(t, report.TotalValue.Equal(decimal.RequireFromString("85.00")))
}

func TestAggregateQuoteLinesGrandTotalsIndependentOfGrouping(t *testing.T) {
	lines := []models.QuoteLine{
		testQuoteLine(1, "ORC-1", 10, "Acme", 3, "10.00"),
		testQuoteLine(2, "ORC-1", 11, "Beta", 4, "2.25"),
		testQuoteLine(3, "ORC-2", 12, "Acme", 2, "7.50"),
		testQuoteLine(4, "ORC-3", 13, "Gamma", 1, "100.00"),
	}

	byQuote, err := AggregateQuoteLines(lines, GroupByQuoteNumber, nil)
	require.NoError(t, err)
	bySupplier, err := AggregateQuoteLines(lines, GroupBySupplier, nil)
	require.NoError(t, err)

	assert.Equal(t, byQuote.LineCount, bySupplier.LineCount)
	assert.Equal(t, byQuote.TotalQty, bySupplier.TotalQty)
	assert.True(t, byQuote.TotalValue.Equal(bySupplier.TotalValue))

	groupSum := decimal.Zero
	for _, group := range bySupplier.Groups {
		groupSum = groupSum.Add(group.TotalValue)
	}
	assert.True(t, groupSum.Equal(bySupplier.TotalValue))
}

func TestAggregateQuoteLinesFirstSeenOrder(t *testing.T) {
	lines := []models.QuoteLine{
		testQuoteLine(1, "ORC-2", 10, "Beta", 1, "1.00"),
		testQuoteLine(2, "ORC-1", 11, "Acme", 1, "1.00"),
		testQuoteLine(3, "ORC-2", 12, "Beta", 1, "1.00"),
	}

	report, err := AggregateQuoteLines(lines, GroupByQuoteNumber, nil)
	require.NoError(t, err)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, "ORC-2", report.Groups[0].Key)
	assert.Equal(t, "ORC-1", report.Groups[1].Key)
}

func TestAggregateQuoteLinesUnknownProduct(t *testing.T) {
	lines := []models.QuoteLine{
		testQuoteLine(1, "ORC-1", 10, "Acme", 1, "1.00"),
		testQuoteLine(2, "ORC-1", 99, "Acme", 1, "1.00"),
	}
	known := map[int64]struct{}{10: {}}

	_, err := AggregateQuoteLines(lines, GroupByQuoteNumber, known)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "expected not-found error, got %v", err)
}

func TestAggregateQuoteLinesInvalidGroupKey(t *testing.T) {
	_, err := AggregateQuoteLines(nil, "requester", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAggregateQuoteLinesEmptyInput(t *testing.T) {
	report, err := AggregateQuoteLines(nil, GroupBySupplier, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Groups)
	assert.Equal(t, 0, report.LineCount)
	assert.True(t, report.TotalValue.IsZero())
}

func TestQuoteStatusFor(t *testing.T) {
	assert.Equal(t, models.QuoteStatusPending, quoteStatusFor(0, 10))
	assert.Equal(t, models.QuoteStatusPartial, quoteStatusFor(4, 10))
	assert.Equal(t, models.QuoteStatusComplete, quoteStatusFor(10, 10))
}

func TestClosingReportRejectsMalformedDates(t *testing.T) {
	repo := &recordingQuoteRepo{}
	svc := NewReportService(repo, nil)

	filters := models.QuoteFilters{StartDate: strPtr("31/02/2025")}
	_, err := svc.ClosingReport(filters, GroupByQuoteNumber)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, repo.listed, "a rejected filter must not reach the store")
}
