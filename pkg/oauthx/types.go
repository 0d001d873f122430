package oauthx

// TokenResponse is the token endpoint response body. Durations are in
// milliseconds: expires_in is the access token lifetime and expires_on is
// the absolute expiry as a Unix epoch timestamp.
type TokenResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// RefreshToken is the opaque single-use refresh token. Only present
	// for refreshable grants (password and refresh_token).
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresIn is the access token lifetime in milliseconds
	ExpiresIn int64 `json:"expires_in"`

	// ExpiresOn is the absolute expiry in Unix epoch milliseconds
	ExpiresOn int64 `json:"expires_on"`
}

// TokenTypeBearer is the only token type the endpoint issues.
const TokenTypeBearer = "bearer"

// ErrorResponse mirrors the JSON error body written by Error.WriteError.
// The SDK client uses it to reconstruct an *Error from a failed call.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RegisterRequest is the self-service registration body.
type RegisterRequest struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

// UserInfo describes a user account without any secret material.
type UserInfo struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Claims    []string `json:"claims"`
	CreatedAt string   `json:"created_at"`
}

// SecurityQuestionResponse carries a user's security question for the
// password reset flow.
type SecurityQuestionResponse struct {
	Username         string `json:"username"`
	SecurityQuestion string `json:"security_question"`
}

// ResetPasswordRequest is the body of the security-answer password reset.
type ResetPasswordRequest struct {
	Username       string `json:"username"`
	SecurityAnswer string `json:"security_answer"`
	NewPassword    string `json:"new_password"`
}

// ClaimRequest names a claim to grant to or revoke from a user.
type ClaimRequest struct {
	Claim string `json:"claim"`
}

// CreateClientRequest is the admin client registration body.
type CreateClientRequest struct {
	Name string `json:"name"`
}

// CreateClientResponse returns the new client's credentials. The secret is
// only ever returned here, at creation time.
type CreateClientResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Name         string `json:"name"`
}

// ClientInfo describes a registered client without its secret.
type ClientInfo struct {
	ClientID  string `json:"client_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ListClientsResponse wraps the admin client listing.
type ListClientsResponse struct {
	Clients []ClientInfo `json:"clients"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
