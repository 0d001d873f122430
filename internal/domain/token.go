package domain

import "time"

// AccessToken is the in-memory result of a successful grant. It is never
// persisted; the HTTP layer serializes it into a signed bearer token.
type AccessToken struct {
	// ClientID of the API client the token was issued to.
	ClientID string `json:"oauth_client_id"`

	// Registered is true iff a user account backs the token. UserAccountID
	// is meaningless when Registered is false.
	Registered    bool  `json:"is_registered"`
	UserAccountID int64 `json:"user_account_id"`

	// Claims granted to the session. Unordered, duplicate-free.
	Claims []Claim `json:"oauth_claims"`

	// ExpiresOn is the absolute expiry in milliseconds since the epoch.
	ExpiresOn int64 `json:"expires_on"`
}

// HasClaim reports set membership.
func (t *AccessToken) HasClaim(c Claim) bool {
	for _, have := range t.Claims {
		if have == c {
			return true
		}
	}
	return false
}

// Expired reports whether the token's absolute expiry has passed.
func (t *AccessToken) Expired() bool {
	return t.ExpiresOn < time.Now().UnixMilli()
}

// CustomerID returns the user id when the token belongs to a registered
// customer, and false otherwise.
func (t *AccessToken) CustomerID() (int64, bool) {
	if t.Registered && t.HasClaim(ClaimCustomer) {
		return t.UserAccountID, true
	}
	return 0, false
}

// EmployeeID returns the user id when the token belongs to a registered
// employee, and false otherwise.
func (t *AccessToken) EmployeeID() (int64, bool) {
	if t.Registered && t.HasClaim(ClaimEmployee) {
		return t.UserAccountID, true
	}
	return 0, false
}

// TokenRequest is the parsed body of a token-endpoint request.
type TokenRequest struct {
	GrantType    GrantType
	Username     string
	Password     string
	RefreshToken string
}

// PasswordRequest builds a password-grant request.
func PasswordRequest(username, password string) TokenRequest {
	return TokenRequest{GrantType: GrantPassword, Username: username, Password: password}
}

// ClientCredentialsRequest builds a client_credentials request.
func ClientCredentialsRequest() TokenRequest {
	return TokenRequest{GrantType: GrantClientCredentials}
}

// RefreshTokenRequest builds a refresh_token request.
func RefreshTokenRequest(refreshToken string) TokenRequest {
	return TokenRequest{GrantType: GrantRefreshToken, RefreshToken: refreshToken}
}
