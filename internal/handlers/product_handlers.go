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

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func bindProductFilters(c *gin.Context) (models.ProductFilters, bool) {
	var filters models.ProductFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return filters, false
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	return filters, true
}

// CreateProduct handles the registration of a new product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.productService.CreateProduct(&product)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product data.", err.Error()))
		} else if errors.Is(err, services.ErrConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Product already exists.", err.Error()))
		} else {
			utils.LogError(err, "CreateProduct: Error from productService.CreateProduct")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProducts handles the product listing with search and pagination.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filters, ok := bindProductFilters(c)
	if !ok {
		return
	}

	products, totalCount, err := h.productService.GetProducts(filters)
	if err != nil {
		utils.LogError(err, "GetProducts: Error from productService.GetProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch products.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      products,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetStock handles the stock listing with extended values.
func (h *ProductHandler) GetStock(c *gin.Context) {
	filters, ok := bindProductFilters(c)
	if !ok {
		return
	}

	rows, totalCount, err := h.productService.GetStockRows(filters)
	if err != nil {
		utils.LogError(err, "GetStock: Error from productService.GetStockRows")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      rows,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetProductByID handles fetching a single product.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		} else {
			utils.LogError(err, "GetProductByID: Error from productService.GetProductByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles updating an existing product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	product.ID = id

	updated, err := h.productService.UpdateProduct(&product)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product data.", err.Error()))
		} else if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		} else if errors.Is(err, services.ErrConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Product already exists.", err.Error()))
		} else {
			utils.LogError(err, "UpdateProduct: Error from productService.UpdateProduct")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles deleting a product that has no quote history.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found to delete.", err.Error()))
		} else {
			utils.LogError(err, "DeleteProduct: Error from productService.DeleteProduct")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
