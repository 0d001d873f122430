package service

import "errors"

// Errors surfaced by the account and client management operations. The
// grant path speaks *oauthx.Error directly, since its status codes and
// messages are part of the token endpoint's wire contract.
var (
	ErrInvalidClientName  = errors.New("service: invalid client name")
	ErrUsernameTaken      = errors.New("service: username already taken")
	ErrUserNotFound       = errors.New("service: user not found")
	ErrBadSecurityAnswer  = errors.New("service: security answer mismatch")
	ErrInvalidCredentials = errors.New("service: invalid credentials")
)
