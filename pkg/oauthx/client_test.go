package oauthx_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSendsBasicAuthHeader(t *testing.T) {
	var gotAuth string
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeToken(w, "at", "rt", time.Hour)
	})

	client := oauthx.NewClient(srv.URL, "myclient", "mysecret")
	_, err := client.ClientCredentialsGrant(context.Background())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(gotAuth, "basic "))
	decoded, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(gotAuth, "basic "))
	require.NoError(t, err)
	require.Equal(t, "myclient:mysecret", string(decoded))
}

func TestPasswordGrantFormFields(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.FormValue("grant_type"))
		require.Equal(t, "alice", r.FormValue("username"))
		require.Equal(t, "secret", r.FormValue("password"))
		writeToken(w, "at", "rt", time.Hour)
	})

	client := oauthx.NewClient(srv.URL, "cid", "cs")
	resp, err := client.PasswordGrant(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "at", resp.AccessToken)
	require.Equal(t, "rt", resp.RefreshToken)
	require.Equal(t, oauthx.TokenTypeBearer, resp.TokenType)
}

func TestTokenReturnsStoredTokenBeforeExpiry(t *testing.T) {
	calls := 0
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeToken(w, "at", "rt", time.Hour)
	})

	client := oauthx.NewClient(srv.URL, "cid", "cs")
	require.NoError(t, client.Authenticate(context.Background(), "alice", "secret"))

	for range 3 {
		token, err := client.Token(context.Background())
		require.NoError(t, err)
		require.Equal(t, "at", token)
	}

	require.Equal(t, 1, calls, "token should be served from memory while fresh")
}

func TestTokenRefreshesNearExpiry(t *testing.T) {
	calls := 0
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		switch calls {
		case 1:
			require.Equal(t, "password", r.FormValue("grant_type"))
			// Expires within the refresh window, so the next Token
			// call must exchange the refresh token.
			writeToken(w, "at1", "rt1", 30*time.Second)
		default:
			require.Equal(t, "refresh_token", r.FormValue("grant_type"))
			require.Equal(t, "rt1", r.FormValue("refresh_token"))
			writeToken(w, "at2", "rt2", time.Hour)
		}
	})

	client := oauthx.NewClient(srv.URL, "cid", "cs")
	require.NoError(t, client.Authenticate(context.Background(), "alice", "secret"))

	token, err := client.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "at2", token)
	require.Equal(t, 2, calls)
}

func TestTokenErrorsWhenUnauthenticated(t *testing.T) {
	client := oauthx.NewClient("http://127.0.0.1:0", "cid", "cs")
	_, err := client.Token(context.Background())
	require.Error(t, err)
}

func TestClientSurfacesOAuthError(t *testing.T) {
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		oauthx.ErrBadUserCredentials.WriteError(w)
	})

	client := oauthx.NewClient(srv.URL, "cid", "cs")
	_, err := client.PasswordGrant(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var oerr *oauthx.Error
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, http.StatusUnauthorized, oerr.StatusCode)
	require.Equal(t, oauthx.ErrorCodeInvalidGrant, oerr.Code)
	require.Equal(t, "Incorrect username or password.", oerr.Description)
}

func writeToken(w http.ResponseWriter, access, refresh string, ttl time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	resp := oauthx.TokenResponse{
		AccessToken:  access,
		TokenType:    oauthx.TokenTypeBearer,
		RefreshToken: refresh,
		ExpiresIn:    ttl.Milliseconds(),
		ExpiresOn:    time.Now().Add(ttl).UnixMilli(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
