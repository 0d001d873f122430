package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/account", "", oauthx.RegisterRequest{
		Username:         "jane",
		Password:         "hunter2",
		FirstName:        "Jane",
		LastName:         "Doe",
		SecurityQuestion: "First pet?",
		SecurityAnswer:   "Fluffy the cat!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var info oauthx.UserInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "jane", info.Username)
	assert.Equal(t, []string{"CUSTOMER"}, info.Claims)

	// The new account can immediately take the password grant.
	token := env.passwordGrant(t, "jane", "hunter2")
	claims, err := env.Verifier.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"CUSTOMER"}, claims.Claims)
}

func TestAccountRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	req := oauthx.RegisterRequest{Username: "jane", Password: "hunter2"}
	rec := env.doJSON(t, http.MethodPost, "/account", "", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/account", "", req)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "username_taken", decodeError(t, rec).Error)
}

func TestAccountRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/account", "", oauthx.RegisterRequest{Username: "jane"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Error)
}

func TestAccountGetRequiresBearer(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/account", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountGetReturnsProfile(t *testing.T) {
	env := newTestEnv(t)

	token := env.passwordGrant(t, "admin", "pw123")

	rec := env.doJSON(t, http.MethodGet, "/account", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var info oauthx.UserInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "admin", info.Username)
	assert.ElementsMatch(t, []string{"ADMIN", "CUSTOMER"}, info.Claims)
}

func TestAccountGetRejectsClientCredentialsToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/oauth/token", env.ClientHeader, url.Values{
		"grant_type": {"client_credentials"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var token oauthx.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))

	// A token without a user behind it cannot read account details.
	rec = env.doJSON(t, http.MethodGet, "/account", token.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAccountSecurityQuestion(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/account/security-question?username=admin", nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp oauthx.SecurityQuestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Favourite colour?", resp.SecurityQuestion)

	req = httptest.NewRequest(http.MethodGet, "/account/security-question?username=ghost", nil)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountResetPassword(t *testing.T) {
	env := newTestEnv(t)

	// Security answers compare normalized, so punctuation and case differ.
	rec := env.doJSON(t, http.MethodPut, "/account/password", "", oauthx.ResetPasswordRequest{
		Username:       "admin",
		SecurityAnswer: "BLUE!",
		NewPassword:    "brand-new",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	env.passwordGrant(t, "admin", "brand-new")

	rec = env.postForm(t, "/oauth/token", env.ClientHeader, url.Values{
		"grant_type": {"password"},
		"username":   {"admin"},
		"password":   {"pw123"},
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountResetPasswordWrongAnswer(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPut, "/account/password", "", oauthx.ResetPasswordRequest{
		Username:       "admin",
		SecurityAnswer: "Red",
		NewPassword:    "brand-new",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid_security_answer", decodeError(t, rec).Error)
}

func TestAccountClaimManagement(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/account", "", oauthx.RegisterRequest{
		Username: "jane", Password: "hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var info oauthx.UserInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))

	admin := env.passwordGrant(t, "admin", "pw123")
	userPath := "/account/" + itoa(info.ID) + "/claims/EMPLOYEE"

	rec = env.doJSON(t, http.MethodPut, userPath, admin.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// The new claim flows into the next token.
	token := env.passwordGrant(t, "jane", "hunter2")
	claims, err := env.Verifier.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CUSTOMER", "EMPLOYEE"}, claims.Claims)

	rec = env.doJSON(t, http.MethodDelete, userPath, admin.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	token = env.passwordGrant(t, "jane", "hunter2")
	claims, err = env.Verifier.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CUSTOMER"}, claims.Claims)
}

func TestAccountClaimManagementRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/account", "", oauthx.RegisterRequest{
		Username: "jane", Password: "hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var info oauthx.UserInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))

	token := env.passwordGrant(t, "jane", "hunter2")
	path := "/account/" + itoa(info.ID) + "/claims/EMPLOYEE"

	rec = env.doJSON(t, http.MethodPut, path, token.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodPut, path, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountClaimManagementRejectsUnknownClaim(t *testing.T) {
	env := newTestEnv(t)

	admin := env.passwordGrant(t, "admin", "pw123")

	rec := env.doJSON(t, http.MethodPut, "/account/1/claims/WIZARD", admin.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPut, "/account/9999/claims/EMPLOYEE", admin.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
