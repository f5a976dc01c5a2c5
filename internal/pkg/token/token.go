package token

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/cleanstreetapp/cleanstreet/internal/pkg/env"
)

const issuer = "cleanstreet-api"

// Lifetime matches the original API contract: tokens expire after one hour.
const Lifetime = time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

func secret() []byte {
	return []byte(env.GetEnv("JWT_SECRET", "cleanstreet-dev-secret"))
}

// Generate signs a bearer token carrying the user's ID and role.
func Generate(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": float64(userID),
		"role":    role,
		"exp":     time.Now().Add(Lifetime).Unix(),
		"iss":     issuer,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret())
}

// Parse verifies a bearer token and returns the user ID and role it carries.
func Parse(tokenString string) (uint, string, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret(), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !t.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return uint(id), role, nil
}
