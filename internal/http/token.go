package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/service"
	"github.com/lotworks/opls/pkg/httpx"
	"github.com/lotworks/opls/pkg/jwtx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// TokenHandler serves POST /oauth/token.
// Accepts application/x-www-form-urlencoded per RFC 6749.
type TokenHandler struct {
	Clients *service.ClientService
	Grants  *service.GrantService
	Signer  jwtx.Signer
	Issuer  string
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Issues access and refresh tokens using the password, client_credentials, and refresh_token grants.
//	@Description	The caller authenticates with a "basic base64url(client_id:client_secret)" Authorization header.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			Authorization	header		string					true	"basic client credential"
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(password, client_credentials, refresh_token)
//	@Param			username		formData	string					false	"Username (password grant)"
//	@Param			password		formData	string					false	"Password (password grant)"
//	@Param			refresh_token	formData	string					false	"Refresh token (refresh_token grant)"
//	@Success		200				{object}	oauthx.TokenResponse	"access_token, token_type, refresh_token, expires_in, expires_on"
//	@Failure		400				{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	oauthx.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Router			/oauth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		oauthx.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		oauthx.ErrInvalidFormBody.WriteError(w)
		return
	}

	client, err := h.Clients.FromAuthorizationHeader(ctx, r.Header.Get("Authorization"))
	if err != nil {
		writeGrantError(w, log, err)
		return
	}

	grantType, err := domain.ParseGrantType(r.Form.Get("grant_type"))
	if err != nil {
		oauthx.ErrUnsupportedGrantType.WriteError(w)
		return
	}

	req := domain.TokenRequest{
		GrantType:    grantType,
		Username:     r.Form.Get("username"),
		Password:     r.Form.Get("password"),
		RefreshToken: r.Form.Get("refresh_token"),
	}

	token, session, err := h.Grants.Fulfill(ctx, client, req)
	if err != nil {
		writeGrantError(w, log, err)
		return
	}

	response, err := buildTokenResponse(h.Signer, h.Issuer, token, session)
	if err != nil {
		log.Error("failed to sign access token", "err", err)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// buildTokenResponse signs the token descriptor into a JWT and assembles
// the wire body. Durations on the wire are milliseconds.
func buildTokenResponse(signer jwtx.Signer, issuer string, token domain.AccessToken, session *domain.Session) (oauthx.TokenResponse, error) {
	claims := make([]string, len(token.Claims))
	for i, c := range token.Claims {
		claims[i] = string(c)
	}

	now := time.Now()
	expiresIn := token.ExpiresOn - now.UnixMilli()
	jwtClaims := jwtx.NewAccessClaims(
		issuer,
		token.ClientID,
		token.Registered,
		token.UserAccountID,
		claims,
		time.Duration(expiresIn)*time.Millisecond,
		now,
	)

	signed, err := signer.Sign(jwtClaims)
	if err != nil {
		return oauthx.TokenResponse{}, err
	}

	response := oauthx.TokenResponse{
		AccessToken: signed,
		TokenType:   oauthx.TokenTypeBearer,
		ExpiresIn:   expiresIn,
		ExpiresOn:   token.ExpiresOn,
	}
	if session != nil {
		response.RefreshToken = session.RefreshToken
	}

	return response, nil
}

// writeGrantError maps service errors onto the wire. Anything that is not
// a deliberate *oauthx.Error is an internal failure.
func writeGrantError(w http.ResponseWriter, log *slog.Logger, err error) {
	var oerr *oauthx.Error
	if errors.As(err, &oerr) {
		oerr.WriteError(w)
		return
	}

	log.Error("token request failed", "err", err)
	oauthx.ErrServerError.WriteError(w)
}
