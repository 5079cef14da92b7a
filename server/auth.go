package server

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ctdp-app/ctdp/internal/apperr"
)

var (
	errInvalidToken = &apperr.Error{
		Message: "invalid or expired token",
		Kind:    apperr.Unauthorized,
	}

	errMissingToken = &apperr.Error{
		Message: "missing bearer token",
		Kind:    apperr.Unauthorized,
	}

	errEmptyUser = &apperr.Error{
		Message: "a user id is required to issue a token",
		Kind:    apperr.Validation,
	}
)

// Claims identifies the user a token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// GenerateToken issues an HS256 token for userID valid for ttl from now.
func GenerateToken(userID string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errEmptyUser
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
		UserID: userID,
	})

	return token.SignedString(secret)
}

// UserIDFromToken validates a token and returns the user id it carries.
func UserIDFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errInvalidToken.Wrap(err)
	}

	if !token.Valid || strings.TrimSpace(claims.UserID) == "" {
		return "", errInvalidToken
	}

	return claims.UserID, nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}

	return strings.TrimSpace(token), nil
}
