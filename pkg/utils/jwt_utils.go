package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey signs and verifies session tokens. Loaded once at startup
// via InitJWTSecret.
var jwtSecretKey []byte

// InitJWTSecret loads the signing key from JWT_SECRET. Tokens cannot be
// issued or verified without it, so an empty value fails startup.
func InitJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET environment variable must be set")
	}
	jwtSecretKey = []byte(secret)
	return nil
}

// AccessTokenTTL is how long a session token stays valid. The tool is used
// over a working day, so a short web-app TTL would just annoy people.
const AccessTokenTTL = 12 * time.Hour

// Claims defines the JWT claims for a session opened through the shared
// password gate. There are no per-user identities, only a session label.
type Claims struct {
	Session string `json:"session"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a session token after the shared password
// gate has been passed.
func GenerateAccessToken(session string) (string, error) {
	expirationTime := time.Now().Add(AccessTokenTTL)
	claims := &Claims{
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "estoque-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
