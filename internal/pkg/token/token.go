package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims carried by the platform's access tokens. The dashboard decodes
// them WITHOUT verifying the signature: the claims are used for display
// and navigation only, authorization is enforced by the API on every
// request. Never use these claims for an access-control decision.
type Claims struct {
	UserID   int64  `json:"id"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
	jwtlib.RegisteredClaims
}

// Decode parses the token payload without signature verification.
// Any malformed token is reported as an error; callers treat that the
// same as having no token at all.
func Decode(raw string) (*Claims, error) {
	parser := jwtlib.NewParser()
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Sign mints an HS256 token with the given claims. Used by cmd/tokengen
// and by tests; the dashboard itself never signs tokens.
func Sign(secret string, userID int64, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   userID,
		Role:     role,
		IsActive: true,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
