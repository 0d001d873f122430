package domain

import (
	"time"

	"github.com/lotworks/opls/pkg/idx"
)

// Client secret and identifier lengths, shared with the bootstrap seeder and
// the admin client endpoints.
const (
	ClientIDLength     = 16
	ClientSecretLength = 32
	ClientNameMaxLen   = 32
)

// Client is a registered API client allowed to request tokens. The secret is
// stored only as a SHA-256 fingerprint; the plaintext is returned exactly
// once, at registration.
type Client struct {
	ID                idx.ID
	ClientID          string
	SecretFingerprint string
	Name              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
