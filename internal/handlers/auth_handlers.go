package handlers

import (
	"errors"
	"net/http"

	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login validates the shared access password and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid access password.", ""))
			return
		}
		utils.LogError(err, "Login: Error from authService.Login")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log in.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, authResp)
}
