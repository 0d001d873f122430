package http

import (
	"net/http"
	"strings"

	"github.com/lotworks/opls/internal/service"
	"github.com/lotworks/opls/pkg/httpx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// RevokeHandler serves POST /oauth/revoke. Per RFC 7009, revoking an
// unknown or already-revoked token still returns 200.
type RevokeHandler struct {
	Clients  *service.ClientService
	Sessions *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Revocation Endpoint
//	@Description	Revokes a refresh token. Unknown tokens are revoked silently per RFC 7009.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			Authorization	header		string					true	"basic client credential"
//	@Param			token			formData	string					true	"Refresh token to revoke"
//	@Success		200				{object}	nil
//	@Failure		400				{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/oauth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	token := r.Form.Get("token")
	if token == "" {
		oauthx.ErrInvalidFormBody.WriteError(w)
		return
	}

	if err := h.Sessions.Revoke(ctx, token, client.ClientID); err != nil {
		log.Error("revocation failed", "err", err)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
