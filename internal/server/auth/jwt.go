// Package auth implements the credential and token primitives of the server:
// bcrypt password hashing and HS256 JWT issuing/validation. The token subject
// is the user's email; tokens are self-contained and never stored.
package auth

import (
	"time"

	"github.com/dmitrijs2005/dailydo/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the fallback access-token lifetime applied by config
// loading when no lifetime is configured.
const DefaultTokenTTL = 15 * time.Minute

func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies the token's signature and expiry and returns
// the subject claim. Any failure (bad signature, malformed structure, expiry
// in the past, missing subject) collapses to common.ErrInvalidToken so that
// callers cannot distinguish which check rejected the token.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
