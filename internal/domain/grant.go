package domain

import "errors"

// ErrUnsupportedGrantType reports a grant_type value outside the closed set.
var ErrUnsupportedGrantType = errors.New("domain: unsupported grant type")

// GrantType is an OAuth2 grant type supported by the token endpoint.
type GrantType string

const (
	GrantPassword          GrantType = "password"
	GrantClientCredentials GrantType = "client_credentials"
	GrantRefreshToken      GrantType = "refresh_token"
)

// ParseGrantType maps the wire value to a GrantType.
func ParseGrantType(s string) (GrantType, error) {
	switch GrantType(s) {
	case GrantPassword:
		return GrantPassword, nil
	case GrantClientCredentials:
		return GrantClientCredentials, nil
	case GrantRefreshToken:
		return GrantRefreshToken, nil
	default:
		return "", ErrUnsupportedGrantType
	}
}

// Refreshable reports whether a grant of this type mints a refreshable
// session. client_credentials does not; the client can always
// re-authenticate with its own credentials.
func (g GrantType) Refreshable() bool {
	return g == GrantPassword || g == GrantRefreshToken
}

func (g GrantType) String() string { return string(g) }
