package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/idx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// SessionService manages refreshable sessions. The session row is the
// single source of truth for a refresh token: rotation and revocation are
// both deletions.
type SessionService struct {
	Store      store.Store
	RefreshTTL time.Duration
}

// Mint creates a session for the given client and optional user, returning
// it with the raw refresh token populated. The raw value is never stored
// and cannot be recovered later.
func (s *SessionService) Mint(ctx context.Context, clientID string, userID *int64) (domain.Session, error) {
	return mintSession(ctx, s.Store, clientID, userID, s.RefreshTTL)
}

func mintSession(ctx context.Context, st store.Store, clientID string, userID *int64, ttl time.Duration) (domain.Session, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		ID:           idx.New(),
		RefreshToken: raw,
		TokenHash:    cryptox.FingerprintToken(raw),
		ClientID:     clientID,
		UserID:       userID,
		ExpiresAt:    time.Now().Add(ttl).UTC(),
	}

	if err := st.Sessions().CreateSession(ctx, session); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

// Validate looks up the session owning the raw refresh token on behalf of
// the given client. Unknown tokens and tokens owned by a different client
// are indistinguishable to the caller. An expired session is deleted on
// sight and reported as expired.
func (s *SessionService) Validate(ctx context.Context, rawToken, clientID string) (domain.Session, error) {
	return validateSession(ctx, s.Store, rawToken, clientID)
}

func validateSession(ctx context.Context, st store.Store, rawToken, clientID string) (domain.Session, error) {
	session, err := st.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, oauthx.ErrInvalidRefreshToken
		}
		return domain.Session{}, err
	}

	if session.ClientID != clientID {
		return domain.Session{}, oauthx.ErrInvalidRefreshToken
	}

	if session.Expired(time.Now()) {
		if err := st.Sessions().DeleteSession(ctx, session.ID.String()); err != nil {
			return domain.Session{}, err
		}
		return domain.Session{}, oauthx.ErrExpiredRefreshToken
	}

	return session, nil
}

// consumeSession validates and deletes the session in one step. Run it
// inside a transaction together with the replacement mint, so a crash can
// never leave the caller with neither token.
func consumeSession(ctx context.Context, st store.Store, rawToken, clientID string) (domain.Session, error) {
	session, err := validateSession(ctx, st, rawToken, clientID)
	if err != nil {
		return domain.Session{}, err
	}

	if err := st.Sessions().DeleteSession(ctx, session.ID.String()); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

// Delete removes a session by id. Deleting an unknown id is a no-op.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.Store.Sessions().DeleteSession(ctx, id)
}

// Revoke deletes the session owning the raw refresh token on behalf of a
// client. Revoking an unknown or foreign token succeeds silently, matching
// RFC 7009 semantics.
func (s *SessionService) Revoke(ctx context.Context, rawToken, clientID string) error {
	session, err := validateSession(ctx, s.Store, rawToken, clientID)
	if err != nil {
		var oerr *oauthx.Error
		if errors.As(err, &oerr) {
			return nil
		}
		return err
	}

	if err := s.Store.Sessions().DeleteSession(ctx, session.ID.String()); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("session revoked",
		slog.String("session_id", session.ID.String()),
		slog.String("client_id", clientID),
	)
	return nil
}
