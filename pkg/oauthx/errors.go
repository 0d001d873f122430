// Package oauthx holds the OAuth2 wire types and error contract shared by
// the token endpoint, its handlers, and the SDK client.
package oauthx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lotworks/opls/pkg/httpx"
)

// OAuth2 error codes per RFC 6749.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
	ErrorCodeServerError          = "server_error"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeAccessDenied         = "access_denied"
)

// Error represents a standard OAuth2 error response per RFC 6749. It
// implements the error interface and is used both by the server (to write
// HTTP responses) and by the SDK client (to surface API failures). The
// status code, error code, and description together form the observable
// contract of the token endpoint, so callers match on all three.
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the OAuth2 error code (e.g., "invalid_request", "invalid_grant")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this Error to an HTTP response writer as an
// OAuth2-compliant JSON error body.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrMalformedAuthHeader is returned when the Authorization header is
	// absent, has the wrong scheme, bad base64, or a credential string
	// that does not decode to exactly id:secret.
	ErrMalformedAuthHeader = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Malformed Authorization header.",
	}

	// ErrClientNotFound is returned when no client matches the presented
	// id and secret pair.
	ErrClientNotFound = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidClient,
		Description: "Client not found.",
	}

	// ErrMissingUserCredentials is returned when a password grant omits
	// the username or password parameter.
	ErrMissingUserCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "Missing username or password.",
	}

	// ErrBadUserCredentials is returned for unknown usernames and wrong
	// passwords alike, so callers cannot probe which accounts exist.
	ErrBadUserCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "Incorrect username or password.",
	}

	// ErrMissingRefreshToken is returned when a refresh_token grant omits
	// the refresh_token parameter.
	ErrMissingRefreshToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "Missing refresh token.",
	}

	// ErrInvalidRefreshToken covers unknown tokens and tokens owned by a
	// different client. The two cases are indistinguishable on the wire.
	ErrInvalidRefreshToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "Invalid refresh token.",
	}

	// ErrExpiredRefreshToken is returned when the session exists but its
	// expiry has passed.
	ErrExpiredRefreshToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "Expired refresh token.",
	}

	// ErrUnsupportedGrantType is returned when the grant_type parameter
	// names a grant the server does not implement.
	ErrUnsupportedGrantType = &Error{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeUnsupportedGrantType,
	}

	// ErrInvalidContentType is returned when the token endpoint receives
	// anything other than application/x-www-form-urlencoded.
	ErrInvalidContentType = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Content-Type must be application/x-www-form-urlencoded.",
	}

	// ErrInvalidFormBody is returned when the request body fails to parse
	// as a form.
	ErrInvalidFormBody = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "Malformed request body.",
	}

	// ErrUnauthorized is returned for authenticated endpoints when the
	// bearer token is missing or invalid.
	ErrUnauthorized = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "Invalid or missing access token.",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "An unexpected error occurred.",
	}
)
