package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler holds the receipt service.
type ReceiptHandler struct {
	receiptService services.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(rs services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: rs}
}

// RecordReceipt registers a delivery against an open quote line.
func (h *ReceiptHandler) RecordReceipt(c *gin.Context) {
	var req services.RecordReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.receiptService.RecordReceipt(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid delivery.", err.Error()))
		} else if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Quote line not found.", err.Error()))
		} else if errors.Is(err, services.ErrConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Quote line is already fully delivered.", err.Error()))
		} else {
			utils.LogError(err, "RecordReceipt: Error from receiptService.RecordReceipt")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record receipt.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetReceiptLines lists recorded deliveries with filters and pagination.
func (h *ReceiptHandler) GetReceiptLines(c *gin.Context) {
	var quoteNumber *string
	if qn := c.Query("quote_number"); qn != "" {
		quoteNumber = &qn
	}
	var productID *int64
	if idStr := c.Query("product_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product_id format.", err.Error()))
			return
		}
		productID = &id
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	lines, totalCount, err := h.receiptService.GetReceiptLines(quoteNumber, productID, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetReceiptLines: Error from receiptService.GetReceiptLines")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch receipt lines.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      lines,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}
