package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// newTokenID mints a random 128-bit jti in hex form.
func newTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateCapabilityToken mints a signed JWT carrying the actor's treasury
// capabilities. Tokens are normally issued by the company's identity system;
// this is used by the local token generator and by tests.
func GenerateCapabilityToken(actorID string, canApprove, canSettle bool, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	jti, err := newTokenID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := middleware.CapabilityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actorID,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		CanApprove: canApprove,
		CanSettle:  canSettle,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
