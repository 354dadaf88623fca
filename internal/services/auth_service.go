package services

import (
	"errors"
	"fmt"

	"estoque_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the shared access password does not
// match.
var ErrInvalidCredentials = errors.New("invalid access password")

// --- DTOs ---

// LoginRequest carries the shared access password. The application has no
// user accounts; a single password gates every authenticated route.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Session     string `json:"session"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
}

type authService struct {
	passwordHash []byte
}

// NewAuthService hashes the configured access password once at startup so the
// plaintext never sits in memory longer than needed.
func NewAuthService(accessPassword string) (AuthService, error) {
	if accessPassword == "" {
		return nil, errors.New("access password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(accessPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access password: %w", err)
	}
	return &authService{passwordHash: hash}, nil
}

// Login validates the shared password and issues a session token. Each
// successful login gets its own session identifier for log correlation.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := uuid.NewString()
	accessToken, err := utils.GenerateAccessToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogInfo("Session opened", map[string]interface{}{"session": session})
	return &AuthResponse{AccessToken: accessToken, Session: session}, nil
}
