package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy.
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (recommended for refresh tokens).
	TokenSize256 = 32
)

// GenerateToken creates a cryptographically secure random token of the given
// byte length, encoded as base64url without padding.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error. Only use it
// during initialization.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token as
// a base64url string. Tokens and client secrets are stored only by
// fingerprint, so a database read never reveals the original value and
// lookups stay a single indexed equality query.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a random alphanumeric string of the given length,
// drawn from crypto/rand. Used for generated client IDs and secrets, which
// must survive transport in a colon-separated Basic credential.
func RandomString(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumeric))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random string: %w", err)
		}
		out[i] = alphanumeric[n.Int64()]
	}
	return string(out), nil
}
