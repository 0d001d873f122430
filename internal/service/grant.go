package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// GrantService dispatches token requests to the individual grant flows and
// mints the resulting access token descriptor plus, for refreshable grants,
// a new session.
type GrantService struct {
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Fulfill runs the requested grant for an already-authenticated client.
// The flow executes in a single transaction, so refresh rotation's
// validate, delete, and replacement mint either all land or none do. The
// one exception is the deletion of an expired session, which must commit
// even though the grant itself fails.
func (s *GrantService) Fulfill(ctx context.Context, client domain.Client, req domain.TokenRequest) (domain.AccessToken, *domain.Session, error) {
	now := time.Now()

	var (
		token   domain.AccessToken
		session *domain.Session
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		switch req.GrantType {
		case domain.GrantPassword:
			token, err = s.passwordGrant(ctx, tx, client, req)
		case domain.GrantClientCredentials:
			token, err = s.clientCredentialsGrant(client)
		case domain.GrantRefreshToken:
			token, err = s.refreshTokenGrant(ctx, tx, client, req)
		default:
			err = oauthx.ErrUnsupportedGrantType
		}
		if err != nil {
			return err
		}

		token.ExpiresOn = now.Add(s.AccessTTL).UnixMilli()

		if req.GrantType.Refreshable() {
			var userID *int64
			if token.Registered {
				uid := token.UserAccountID
				userID = &uid
			}

			minted, err := mintSession(ctx, tx, client.ClientID, userID, s.RefreshTTL)
			if err != nil {
				return err
			}
			session = &minted
		}

		return nil
	})
	if err != nil {
		// The rollback restores an expired session that was deleted
		// inside the transaction. Remove it again on its own commit, so
		// the next presentation reads as invalid rather than expired.
		if errors.Is(err, oauthx.ErrExpiredRefreshToken) {
			s.discardSession(ctx, req.RefreshToken)
		}
		return domain.AccessToken{}, nil, err
	}

	slogx.FromContext(ctx).Info("token issued",
		slog.String("grant_type", req.GrantType.String()),
		slog.String("client_id", client.ClientID),
		slog.Bool("registered", token.Registered),
	)

	return token, session, nil
}

// passwordGrant authenticates the user and builds a registered token
// carrying exactly the user's stored claims. CUSTOMER is not implied for
// registered tokens; it is granted at registration and can be revoked.
func (s *GrantService) passwordGrant(ctx context.Context, tx store.Tx, client domain.Client, req domain.TokenRequest) (domain.AccessToken, error) {
	if req.Username == "" || req.Password == "" {
		return domain.AccessToken{}, oauthx.ErrMissingUserCredentials
	}

	user, err := authenticate(ctx, tx, req.Username, req.Password)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return s.userToken(ctx, tx, client, user.ID)
}

// clientCredentialsGrant builds an unregistered token for the client
// itself. It carries only the implicit CUSTOMER claim and no session.
func (s *GrantService) clientCredentialsGrant(client domain.Client) (domain.AccessToken, error) {
	return domain.AccessToken{
		ClientID: client.ClientID,
		Claims:   []domain.Claim{domain.ClaimCustomer},
	}, nil
}

// refreshTokenGrant consumes the presented session and re-derives the token
// from the user's current claims, so claim changes take effect on the next
// refresh.
func (s *GrantService) refreshTokenGrant(ctx context.Context, tx store.Tx, client domain.Client, req domain.TokenRequest) (domain.AccessToken, error) {
	if req.RefreshToken == "" {
		return domain.AccessToken{}, oauthx.ErrMissingRefreshToken
	}

	session, err := consumeSession(ctx, tx, req.RefreshToken, client.ClientID)
	if err != nil {
		return domain.AccessToken{}, err
	}

	if session.UserID == nil {
		return s.clientCredentialsGrant(client)
	}
	return s.userToken(ctx, tx, client, *session.UserID)
}

// discardSession deletes the session owning rawToken outside any grant
// transaction. Failures are logged, not returned: the grant has already
// failed and the row will be swept by housekeeping regardless.
func (s *GrantService) discardSession(ctx context.Context, rawToken string) {
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		return
	}

	if err := s.Store.Sessions().DeleteSession(ctx, session.ID.String()); err != nil {
		slogx.FromContext(ctx).Error("failed to discard expired session",
			slog.String("session_id", session.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *GrantService) userToken(ctx context.Context, tx store.Tx, client domain.Client, userID int64) (domain.AccessToken, error) {
	claims, err := tx.Users().GetUserClaims(ctx, userID)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return domain.AccessToken{
		ClientID:      client.ClientID,
		Registered:    true,
		UserAccountID: userID,
		Claims:        claims,
	}, nil
}
