package security

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/tuuze-market/internal/domain/models"
)

// NewToken генерирует JWT-токен для продавца с заданным временем жизни.
// В claims кладутся идентификатор продавца (sub) и отображаемое имя
func NewToken(ctx context.Context, merchant *models.Merchant, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      merchant.ID,
		"username": merchant.Username,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", errors.New("JWT_SECRET environment variable is not set")
	}
	secret := []byte(secretStr)
	return token.SignedString(secret)
}
