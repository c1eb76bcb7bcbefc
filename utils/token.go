package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrShareDisabled is returned when no signing secret is configured.
var ErrShareDisabled = errors.New("JWT_SECRET is not set")

// GenerateShareToken signs a share token for a post, valid for ttl
func GenerateShareToken(secret, postID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrShareDisabled
	}

	claims := jwt.MapClaims{
		"post_id": postID,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateShareToken parses and validates the token and returns the shared post id
func ValidateShareToken(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", ErrShareDisabled
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid share token")
	}

	postID, _ := claims["post_id"].(string)
	if postID == "" {
		return "", fmt.Errorf("share token has no post_id")
	}
	return postID, nil
}
