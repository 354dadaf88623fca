package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler exposes the application_settings key-value store. The
// purchasing margin and the maintenance interval live here.
type SettingHandler struct {
	settingRepo repositories.SettingRepository
	db          *sql.DB
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(sr repositories.SettingRepository, db *sql.DB) *SettingHandler {
	return &SettingHandler{settingRepo: sr, db: db}
}

// GetSettings retrieves all application settings.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingRepo.GetAll()
	if err != nil {
		utils.LogError(err, "GetSettings: Failed to fetch application settings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch application settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetSettingByKey retrieves a specific application setting by its key.
func (h *SettingHandler) GetSettingByKey(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.settingRepo.GetByKey(key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Application setting not found.", "No setting for key "+key))
		} else {
			utils.LogError(err, "GetSettingByKey: Failed to fetch setting "+key)
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch application setting.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UpsertSetting creates a new setting or updates an existing one by key.
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var setting models.ApplicationSetting
	if err := c.ShouldBindJSON(&setting); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	if utils.IsEmpty(setting.SettingKey) {
		utils.RespondValidationFailed(c, "Setting key cannot be empty")
		return
	}

	if err := h.settingRepo.Upsert(h.db, &setting); err != nil {
		utils.LogError(err, "UpsertSetting: Failed to upsert setting "+setting.SettingKey)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save application setting.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSettingByKey deletes an application setting; the services fall back
// to their defaults when a key is absent.
func (h *SettingHandler) DeleteSettingByKey(c *gin.Context) {
	key := c.Param("key")

	err := h.settingRepo.DeleteByKey(h.db, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Application setting not found to delete.", "No setting for key "+key))
		} else {
			utils.LogError(err, "DeleteSettingByKey: Failed to delete setting "+key)
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete application setting.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application setting '" + key + "' deleted successfully"})
}
