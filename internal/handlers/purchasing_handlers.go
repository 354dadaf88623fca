package handlers

import (
	"errors"
	"net/http"

	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PurchasingHandler holds the purchasing service.
type PurchasingHandler struct {
	purchasingService services.PurchasingService
}

// NewPurchasingHandler creates a new PurchasingHandler.
func NewPurchasingHandler(ps services.PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{purchasingService: ps}
}

// GetPurchaseNeeds computes the current purchasing needs, optionally scoped
// to one supplier or category group.
func (h *PurchasingHandler) GetPurchaseNeeds(c *gin.Context) {
	supplier := c.DefaultQuery("supplier", services.FilterAll)
	categoryGroup := c.DefaultQuery("category_group", services.FilterAll)

	report, err := h.purchasingService.ComputeNeeds(supplier, categoryGroup)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Product data is incomplete for the purchasing computation.", err.Error()))
		} else {
			utils.LogError(err, "GetPurchaseNeeds: Error from purchasingService.ComputeNeeds")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute purchase needs.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
