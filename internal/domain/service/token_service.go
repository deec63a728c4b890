package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Typed token verification failures. Implementations report these so callers
// can distinguish the failure mode without inspecting library errors.
var (
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned when the token is structurally invalid.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrBadSignature is returned when the token signature does not match.
	ErrBadSignature = errors.New("token signature mismatch")
)

// Claims defines the custom claims carried by the bearer tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Sign encodes the given claim set plus an expiry into a signed token string.
	Sign(claims map[string]string) (string, error)

	// Verify checks the validity of a token string and returns its claims.
	// Failures are reported through the typed token errors, never panics.
	Verify(tokenString string) (*Claims, error)
}
