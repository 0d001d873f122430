package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Claims are the access-token claims issued by the token endpoint. Changes
// here should be additive so older tokens keep parsing.
type Claims struct {
	jwt.RegisteredClaims

	// ClientID is the OAuth client this token was minted through.
	ClientID string `json:"cid"`

	// Registered marks tokens minted for a user account rather than a
	// bare client_credentials principal.
	Registered bool `json:"registered"`

	// UserID is the user account id. Only meaningful when Registered.
	UserID int64 `json:"uid,omitempty"`

	// Claims are the authorization claims held by the principal,
	// e.g. ["ADMIN","CUSTOMER"].
	Claims []string `json:"claims,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(
	issuer, clientID string,
	registered bool,
	userID int64,
	claims []string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		ClientID:   clientID,
		Registered: registered,
		UserID:     userID,
		Claims:     claims,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasClaim reports whether the principal holds the given claim.
func (c *Claims) HasClaim(claim string) bool {
	for _, have := range c.Claims {
		if have == claim {
			return true
		}
	}
	return false
}

// ValidateIssuer checks if the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
