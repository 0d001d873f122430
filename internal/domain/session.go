package domain

import (
	"time"

	"github.com/lotworks/opls/pkg/idx"
)

// Session is a refreshable session minted by password and refresh_token
// grants. Sessions are immutable once stored; every lifecycle transition
// (rotation, expiry during validation, explicit revocation) is a deletion.
type Session struct {
	ID idx.ID

	// RefreshToken holds the opaque token value only on the instance
	// returned at creation time. Loaded sessions carry the empty string;
	// the store keeps just the fingerprint.
	RefreshToken string

	TokenHash string
	ClientID  string
	UserID    *int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session's expiry lies strictly before now.
// A session whose expiry equals the current instant is still valid.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
