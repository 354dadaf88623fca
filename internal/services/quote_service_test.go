package services

import (
	"testing"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuoteRepo satisfies repositories.QuoteRepository and records
// whether the line listing was reached.
type recordingQuoteRepo struct {
	listed bool
}

func (r *recordingQuoteRepo) CreateQuoteLine(repositories.SQLExecutor, *models.QuoteLine) (int64, error) {
	return 0, nil
}

func (r *recordingQuoteRepo) GetQuoteLineByID(int64) (*models.QuoteLine, error) {
	return nil, repositories.ErrNotFound
}

func (r *recordingQuoteRepo) GetQuoteLines(models.QuoteFilters) ([]models.QuoteLine, int, error) {
	r.listed = true
	return []models.QuoteLine{}, 0, nil
}

func (r *recordingQuoteRepo) GetLinesByQuoteNumber(string) ([]models.QuoteLine, error) {
	return []models.QuoteLine{}, nil
}

func (r *recordingQuoteRepo) UpdateQuoteLineStatus(repositories.SQLExecutor, int64, string) error {
	return nil
}

func (r *recordingQuoteRepo) DeleteQuoteLine(repositories.SQLExecutor, int64) error {
	return nil
}

func TestGetQuoteLinesRejectsMalformedDates(t *testing.T) {
	tests := []struct {
		name    string
		filters models.QuoteFilters
	}{
		{
			name:    "impossible calendar day as start",
			filters: models.QuoteFilters{StartDate: strPtr("31/02/2025")},
		},
		{
			name:    "iso formatted start",
			filters: models.QuoteFilters{StartDate: strPtr("2025-01-01")},
		},
		{
			name:    "free text end",
			filters: models.QuoteFilters{EndDate: strPtr("junho")},
		},
		{
			name: "valid start with malformed end",
			filters: models.QuoteFilters{
				StartDate: strPtr("01/01/2025"),
				EndDate:   strPtr("01/13/2025"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingQuoteRepo{}
			svc := NewQuoteService(repo, nil, nil)

			_, _, err := svc.GetQuoteLines(tt.filters)

			require.ErrorIs(t, err, ErrValidation)
			assert.False(t, repo.listed, "a rejected filter must not reach the store")
		})
	}
}

func TestGetQuoteLinesAcceptsWellFormedDates(t *testing.T) {
	repo := &recordingQuoteRepo{}
	svc := NewQuoteService(repo, nil, nil)

	filters := models.QuoteFilters{
		StartDate: strPtr("01/01/2025"),
		EndDate:   strPtr("31/01/2025"),
	}
	lines, total, err := svc.GetQuoteLines(filters)

	require.NoError(t, err)
	assert.True(t, repo.listed)
	assert.Empty(t, lines)
	assert.Zero(t, total)
}
