package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"estoque_backend/internal/models"
	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MaintenanceHandler holds the maintenance service.
type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(ms services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: ms}
}

// CreateUnit registers a new air-conditioning unit.
func (h *MaintenanceHandler) CreateUnit(c *gin.Context) {
	var unit models.MaintenanceUnit
	if err := c.ShouldBindJSON(&unit); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.maintenanceService.CreateUnit(&unit)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit data.", err.Error()))
		} else if errors.Is(err, services.ErrConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A unit with this tag already exists.", err.Error()))
		} else {
			utils.LogError(err, "CreateUnit: Error from maintenanceService.CreateUnit")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetUnits lists units with filters and pagination.
func (h *MaintenanceHandler) GetUnits(c *gin.Context) {
	var filters models.MaintenanceFilters
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

	units, totalCount, err := h.maintenanceService.GetUnits(filters)
	if err != nil {
		utils.LogError(err, "GetUnits: Error from maintenanceService.GetUnits")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch units.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      units,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetUnitByID fetches a single unit.
func (h *MaintenanceHandler) GetUnitByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	unit, err := h.maintenanceService.GetUnitByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found.", err.Error()))
		} else {
			utils.LogError(err, "GetUnitByID: Error from maintenanceService.GetUnitByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}

// UpdateUnit updates an existing unit.
func (h *MaintenanceHandler) UpdateUnit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	var unit models.MaintenanceUnit
	if err := c.ShouldBindJSON(&unit); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	unit.ID = id

	updated, err := h.maintenanceService.UpdateUnit(&unit)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit data.", err.Error()))
		} else if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found.", err.Error()))
		} else if errors.Is(err, services.ErrConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A unit with this tag already exists.", err.Error()))
		} else {
			utils.LogError(err, "UpdateUnit: Error from maintenanceService.UpdateUnit")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteUnit removes a unit.
func (h *MaintenanceHandler) DeleteUnit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	if err := h.maintenanceService.DeleteUnit(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found to delete.", err.Error()))
		} else {
			utils.LogError(err, "DeleteUnit: Error from maintenanceService.DeleteUnit")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete unit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}

// RegisterService records a completed maintenance visit on a unit. The
// service date is validated strictly here; only listing tolerates bad dates.
func (h *MaintenanceHandler) RegisterService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unit ID format.", err.Error()))
		return
	}

	var req services.RegisterServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	unit, err := h.maintenanceService.RegisterService(id, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid service data.", err.Error()))
		} else if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unit not found.", err.Error()))
		} else {
			utils.LogError(err, "RegisterService: Error from maintenanceService.RegisterService")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register service.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}

// GetOverview returns the derived schedule for every unit plus state counts.
func (h *MaintenanceHandler) GetOverview(c *gin.Context) {
	overview, err := h.maintenanceService.Overview(time.Now())
	if err != nil {
		utils.LogError(err, "GetOverview: Error from maintenanceService.Overview")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build maintenance overview.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, overview)
}
