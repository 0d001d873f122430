package domain

import (
	"regexp"
	"strings"
	"time"
)

// UserAccount is an end user that can authenticate through the password
// grant. Password and security-answer hashes are Argon2id PHC strings.
type UserAccount struct {
	ID                 int64
	Username           string
	FirstName          string
	LastName           string
	PasswordHash       string
	SecurityQuestion   string
	SecurityAnswerHash string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

var securityAnswerStrip = regexp.MustCompile(`[ !@#$%^&*()\-_=+'",.<>?]`)

// NormalizeSecurityAnswer lowercases the answer and strips spacing and
// punctuation so that "Fluffy the cat!" and "fluffythecat" compare equal.
func NormalizeSecurityAnswer(answer string) string {
	return strings.ToLower(securityAnswerStrip.ReplaceAllString(answer, ""))
}
