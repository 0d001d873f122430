package domain

import "strings"

// Claim is a permission marker attached to a user account and propagated
// into access tokens. The set is closed; unknown strings parse to ClaimNone.
type Claim string

const (
	ClaimNone     Claim = "NONE"
	ClaimAdmin    Claim = "ADMIN"
	ClaimEmployee Claim = "EMPLOYEE"
	ClaimCustomer Claim = "CUSTOMER"
)

// ParseClaim maps a string to a Claim, case-insensitively.
func ParseClaim(s string) Claim {
	switch Claim(strings.ToUpper(strings.TrimSpace(s))) {
	case ClaimAdmin:
		return ClaimAdmin
	case ClaimEmployee:
		return ClaimEmployee
	case ClaimCustomer:
		return ClaimCustomer
	default:
		return ClaimNone
	}
}
