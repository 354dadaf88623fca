package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"estoque_backend/internal/models"
	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// QuoteHandler holds the quote service.
type QuoteHandler struct {
	quoteService services.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(qs services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: qs}
}

// GenerateQuote turns a purchasing round into persisted quote lines.
func (h *QuoteHandler) GenerateQuote(c *gin.Context) {
	var req services.GenerateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	quote, err := h.quoteService.GenerateQuote(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not generate quote.", err.Error()))
		} else {
			utils.LogError(err, "GenerateQuote: Error from quoteService.GenerateQuote")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate quote.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// GetQuoteLines lists quote lines with filters and pagination.
func (h *QuoteHandler) GetQuoteLines(c *gin.Context) {
	var filters models.QuoteFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}

	lines, totalCount, err := h.quoteService.GetQuoteLines(filters)
	if err != nil {
		utils.LogError(err, "GetQuoteLines: Error from quoteService.GetQuoteLines")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch quote lines.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      lines,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetQuoteByNumber fetches every line of one quote with its totals.
func (h *QuoteHandler) GetQuoteByNumber(c *gin.Context) {
	quoteNumber := c.Param("quote_number")

	quote, err := h.quoteService.GetQuoteByNumber(quoteNumber)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Quote not found.", "No lines for quote "+quoteNumber))
		} else {
			utils.LogError(err, "GetQuoteByNumber: Error from quoteService.GetQuoteByNumber")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch quote.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, quote)
}

// DeleteQuoteLine removes a quote line that has no recorded receipts.
func (h *QuoteHandler) DeleteQuoteLine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid quote line ID format.", err.Error()))
		return
	}

	if err := h.quoteService.DeleteQuoteLine(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Quote line not found to delete.", err.Error()))
		} else {
			utils.LogError(err, "DeleteQuoteLine: Error from quoteService.DeleteQuoteLine")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete quote line.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote line deleted successfully"})
}
