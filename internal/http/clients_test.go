package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientsCreateListDelete(t *testing.T) {
	env := newTestEnv(t)
	admin := env.passwordGrant(t, "admin", "pw123")

	rec := env.doJSON(t, http.MethodPost, "/clients", admin.AccessToken, oauthx.CreateClientRequest{
		Name: "Mobile App",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created oauthx.CreateClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.ClientID, 16)
	assert.Len(t, created.ClientSecret, 32)
	assert.Equal(t, "Mobile App", created.Name)

	// The fresh credentials work at the token endpoint.
	rec = env.postForm(t, "/oauth/token", basicHeader(created.ClientID, created.ClientSecret), url.Values{
		"grant_type": {"client_credentials"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSON(t, http.MethodGet, "/clients", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list oauthx.ListClientsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Clients, 2)

	names := []string{list.Clients[0].Name, list.Clients[1].Name}
	assert.ElementsMatch(t, []string{"Website", "Mobile App"}, names)

	rec = env.doJSON(t, http.MethodDelete, "/clients/"+created.ClientID, admin.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The deleted client's credentials stop working.
	rec = env.postForm(t, "/oauth/token", basicHeader(created.ClientID, created.ClientSecret), url.Values{
		"grant_type": {"client_credentials"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_client", decodeError(t, rec).Error)
}

func TestClientsDeleteUnknown(t *testing.T) {
	env := newTestEnv(t)
	admin := env.passwordGrant(t, "admin", "pw123")

	rec := env.doJSON(t, http.MethodDelete, "/clients/doesnotexist0000", admin.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientsCreateRejectsBadName(t *testing.T) {
	env := newTestEnv(t)
	admin := env.passwordGrant(t, "admin", "pw123")

	rec := env.doJSON(t, http.MethodPost, "/clients", admin.AccessToken, oauthx.CreateClientRequest{
		Name: "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/account", "", oauthx.RegisterRequest{
		Username: "jane", Password: "hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	token := env.passwordGrant(t, "jane", "hunter2")

	rec = env.doJSON(t, http.MethodGet, "/clients", token.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/clients", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
