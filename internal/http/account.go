package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/service"
	"github.com/lotworks/opls/pkg/httpx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// AccountHandler handles registration, password reset, and claim management.
type AccountHandler struct {
	Accounts *service.AccountService
}

// HandleRegister handles POST /account
//
//	@Summary		Register Account
//	@Description	Creates a new user account with the CUSTOMER claim.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		oauthx.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	oauthx.UserInfo			"The created account"
//	@Failure		400		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/account [post].
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req oauthx.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	user, err := h.Accounts.Register(ctx, service.RegisterRequest{
		Username:         req.Username,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Username and password are required",
			})
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteJSON(w, http.StatusConflict, oauthx.ErrorResponse{
				Error:            "username_taken",
				ErrorDescription: "Username is already taken",
			})
		default:
			log.Error("failed to register account", "error", err)
			oauthx.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, buildUserInfo(user, []domain.Claim{domain.ClaimCustomer}))
}

// HandleGet handles GET /account
//
//	@Summary		Current Account
//	@Description	Returns the authenticated user's account details and claims.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	oauthx.UserInfo			"The authenticated account"
//	@Failure		401	{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/account [get].
func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromCtx(ctx)
	if !ok {
		oauthx.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.Accounts.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load account", "error", err, "user_id", userID)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	claims, err := h.Accounts.Claims(ctx, userID)
	if err != nil {
		log.Error("failed to load account claims", "error", err, "user_id", userID)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, buildUserInfo(user, claims))
}

// HandleSecurityQuestion handles GET /account/security-question
//
//	@Summary		Security Question
//	@Description	Returns the security question for a username, for the password reset flow.
//	@Tags			Accounts
//	@Produce		json
//	@Param			username	query		string								true	"Username to look up"
//	@Success		200			{object}	oauthx.SecurityQuestionResponse		"username, security_question"
//	@Failure		404			{object}	oauthx.ErrorResponse				"error, error_description"
//	@Router			/account/security-question [get].
func (h *AccountHandler) HandleSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := r.URL.Query().Get("username")
	question, err := h.Accounts.SecurityQuestion(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeUserNotFound(w)
			return
		}
		log.Error("failed to load security question", "error", err)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, oauthx.SecurityQuestionResponse{
		Username:         username,
		SecurityQuestion: question,
	})
}

// HandleResetPassword handles PUT /account/password
//
//	@Summary		Reset Password
//	@Description	Resets a user's password after verifying their security answer. All of the user's sessions are revoked.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body	oauthx.ResetPasswordRequest	true	"Reset request"
//	@Success		204		"Password updated"
//	@Failure		400		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/account/password [put].
func (h *AccountHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req oauthx.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}
	if req.Username == "" || req.NewPassword == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Username and new password are required",
		})
		return
	}

	err := h.Accounts.ResetPassword(ctx, req.Username, req.SecurityAnswer, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeUserNotFound(w)
		case errors.Is(err, service.ErrBadSecurityAnswer):
			httpx.WriteJSON(w, http.StatusForbidden, oauthx.ErrorResponse{
				Error:            "invalid_security_answer",
				ErrorDescription: "Incorrect security answer",
			})
		default:
			log.Error("failed to reset password", "error", err)
			oauthx.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGrantClaim handles PUT /account/{id}/claims/{claim}
//
//	@Summary		Grant Claim
//	@Description	Grants a claim to a user account. Requires the ADMIN claim.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int		true	"User ID"
//	@Param			claim	path	string	true	"Claim name (ADMIN, EMPLOYEE, CUSTOMER)"
//	@Success		204		"Claim granted"
//	@Failure		400		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/account/{id}/claims/{claim} [put].
func (h *AccountHandler) HandleGrantClaim(w http.ResponseWriter, r *http.Request) {
	h.applyClaimChange(w, r, h.Accounts.GrantClaim)
}

// HandleRevokeClaim handles DELETE /account/{id}/claims/{claim}
//
//	@Summary		Revoke Claim
//	@Description	Revokes a claim from a user account. Requires the ADMIN claim.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int		true	"User ID"
//	@Param			claim	path	string	true	"Claim name (ADMIN, EMPLOYEE, CUSTOMER)"
//	@Success		204		"Claim revoked"
//	@Failure		400		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/account/{id}/claims/{claim} [delete].
func (h *AccountHandler) HandleRevokeClaim(w http.ResponseWriter, r *http.Request) {
	h.applyClaimChange(w, r, h.Accounts.RevokeClaim)
}

func (h *AccountHandler) applyClaimChange(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID int64, claim domain.Claim) error,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "User ID must be an integer",
		})
		return
	}

	claim := domain.ParseClaim(r.PathValue("claim"))
	if claim == domain.ClaimNone {
		httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Unknown claim",
		})
		return
	}

	if err := apply(ctx, userID, claim); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeUserNotFound(w)
		default:
			log.Error("failed to update claims", "error", err, "user_id", userID)
			oauthx.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func buildUserInfo(user domain.UserAccount, claims []domain.Claim) oauthx.UserInfo {
	names := make([]string, len(claims))
	for i, c := range claims {
		names[i] = string(c)
	}
	return oauthx.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Claims:    names,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func writeUserNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, oauthx.ErrorResponse{
		Error:            "user_not_found",
		ErrorDescription: "User not found",
	})
}
