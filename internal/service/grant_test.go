package service

import (
	"context"
	"testing"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/idx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/stretchr/testify/require"
)

func TestPasswordGrant(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client, _ := seedClient(t, st)
	svc := newGrantService(st)

	t.Run("issues registered token with stored claims", func(t *testing.T) {
		token, session, err := svc.Fulfill(ctx, client, domain.PasswordRequest("admin", "pw123"))
		require.NoError(t, err)

		require.Equal(t, client.ClientID, token.ClientID)
		require.True(t, token.Registered)
		require.Positive(t, token.UserAccountID)
		require.ElementsMatch(t, []domain.Claim{domain.ClaimAdmin, domain.ClaimCustomer}, token.Claims)
		require.False(t, token.Expired())

		require.NotNil(t, session)
		require.NotEmpty(t, session.RefreshToken)
		require.Equal(t, client.ClientID, session.ClientID)
		require.NotNil(t, session.UserID)
		require.Equal(t, token.UserAccountID, *session.UserID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, _, errWrong := svc.Fulfill(ctx, client, domain.PasswordRequest("admin", "nope"))
		_, _, errUnknown := svc.Fulfill(ctx, client, domain.PasswordRequest("nobody", "nope"))

		require.ErrorIs(t, errWrong, oauthx.ErrBadUserCredentials)
		require.ErrorIs(t, errUnknown, oauthx.ErrBadUserCredentials)
		require.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, _, err := svc.Fulfill(ctx, client, domain.PasswordRequest("", "pw123"))
		require.ErrorIs(t, err, oauthx.ErrMissingUserCredentials)

		_, _, err = svc.Fulfill(ctx, client, domain.PasswordRequest("admin", ""))
		require.ErrorIs(t, err, oauthx.ErrMissingUserCredentials)
	})

	t.Run("revoked CUSTOMER claim does not resurface", func(t *testing.T) {
		accounts := &AccountService{Store: st}
		user, err := accounts.Register(ctx, RegisterRequest{Username: "emp", Password: "pw789"})
		require.NoError(t, err)

		require.NoError(t, accounts.GrantClaim(ctx, user.ID, domain.ClaimEmployee))
		require.NoError(t, accounts.RevokeClaim(ctx, user.ID, domain.ClaimCustomer))

		token, _, err := svc.Fulfill(ctx, client, domain.PasswordRequest("emp", "pw789"))
		require.NoError(t, err)
		require.Equal(t, []domain.Claim{domain.ClaimEmployee}, token.Claims)
	})
}

func TestClientCredentialsGrant(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client, _ := seedClient(t, st)
	svc := newGrantService(st)

	token, session, err := svc.Fulfill(ctx, client, domain.ClientCredentialsRequest())
	require.NoError(t, err)

	require.Equal(t, client.ClientID, token.ClientID)
	require.False(t, token.Registered)
	require.Equal(t, []domain.Claim{domain.ClaimCustomer}, token.Claims)

	// Not refreshable: no session is minted.
	require.Nil(t, session)
}

func TestRefreshTokenGrant(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client, _ := seedClient(t, st)
	svc := newGrantService(st)

	t.Run("rotates the session", func(t *testing.T) {
		_, first, err := svc.Fulfill(ctx, client, domain.PasswordRequest("admin", "pw123"))
		require.NoError(t, err)

		token, second, err := svc.Fulfill(ctx, client, domain.RefreshTokenRequest(first.RefreshToken))
		require.NoError(t, err)
		require.True(t, token.Registered)
		require.ElementsMatch(t, []domain.Claim{domain.ClaimAdmin, domain.ClaimCustomer}, token.Claims)
		require.NotNil(t, second)
		require.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// The first token was consumed by the rotation.
		_, _, err = svc.Fulfill(ctx, client, domain.RefreshTokenRequest(first.RefreshToken))
		require.ErrorIs(t, err, oauthx.ErrInvalidRefreshToken)

		// The replacement still works.
		_, _, err = svc.Fulfill(ctx, client, domain.RefreshTokenRequest(second.RefreshToken))
		require.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		_, _, err := svc.Fulfill(ctx, client, domain.RefreshTokenRequest(""))
		require.ErrorIs(t, err, oauthx.ErrMissingRefreshToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, _, err := svc.Fulfill(ctx, client, domain.RefreshTokenRequest("never-issued"))
		require.ErrorIs(t, err, oauthx.ErrInvalidRefreshToken)
	})

	t.Run("token of another client is invalid, not expired", func(t *testing.T) {
		_, session, err := svc.Fulfill(ctx, client, domain.PasswordRequest("admin", "pw123"))
		require.NoError(t, err)

		other, _, err := (&ClientService{Store: st}).CreateClient(ctx, "Other App")
		require.NoError(t, err)

		_, _, err = svc.Fulfill(ctx, other, domain.RefreshTokenRequest(session.RefreshToken))
		require.ErrorIs(t, err, oauthx.ErrInvalidRefreshToken)

		// The failed attempt must not have consumed the session.
		_, _, err = svc.Fulfill(ctx, client, domain.RefreshTokenRequest(session.RefreshToken))
		require.NoError(t, err)
	})

	t.Run("expired token is reported and deleted", func(t *testing.T) {
		raw := cryptox.MustGenerateToken(cryptox.TokenSize256)
		expired := domain.Session{
			ID:        idx.New(),
			TokenHash: cryptox.FingerprintToken(raw),
			ClientID:  client.ClientID,
			ExpiresAt: time.Now().Add(-time.Minute).UTC(),
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, expired))

		_, _, err := svc.Fulfill(ctx, client, domain.RefreshTokenRequest(raw))
		require.ErrorIs(t, err, oauthx.ErrExpiredRefreshToken)

		// The deletion committed despite the grant's rollback.
		_, err = st.Sessions().GetSessionByTokenHash(ctx, expired.TokenHash)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Gone on second presentation.
		_, _, err = svc.Fulfill(ctx, client, domain.RefreshTokenRequest(raw))
		require.ErrorIs(t, err, oauthx.ErrInvalidRefreshToken)
	})

	t.Run("claim changes surface on next refresh", func(t *testing.T) {
		accounts := &AccountService{Store: st}
		user, err := accounts.Register(ctx, RegisterRequest{Username: "jane", Password: "pw456"})
		require.NoError(t, err)

		_, session, err := svc.Fulfill(ctx, client, domain.PasswordRequest("jane", "pw456"))
		require.NoError(t, err)

		require.NoError(t, accounts.GrantClaim(ctx, user.ID, domain.ClaimEmployee))

		token, _, err := svc.Fulfill(ctx, client, domain.RefreshTokenRequest(session.RefreshToken))
		require.NoError(t, err)
		require.ElementsMatch(t,
			[]domain.Claim{domain.ClaimCustomer, domain.ClaimEmployee},
			token.Claims,
		)
	})
}

func TestUnsupportedGrantType(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client, _ := seedClient(t, st)
	svc := newGrantService(st)

	_, _, err := svc.Fulfill(ctx, client, domain.TokenRequest{GrantType: "authorization_code"})
	require.ErrorIs(t, err, oauthx.ErrUnsupportedGrantType)
}

func TestAccessTokenExpiry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client, _ := seedClient(t, st)
	svc := newGrantService(st)

	before := time.Now().Add(testAccessTTL).UnixMilli()
	token, _, err := svc.Fulfill(ctx, client, domain.ClientCredentialsRequest())
	require.NoError(t, err)
	after := time.Now().Add(testAccessTTL).UnixMilli()

	require.GreaterOrEqual(t, token.ExpiresOn, before)
	require.LessOrEqual(t, token.ExpiresOn, after)
}
