package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign access-token claims into a JWT.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	Public() ed25519.PublicKey
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// EdDSASigner signs JWTs with an Ed25519 key.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewSignerEdDSA wraps an existing Ed25519 private key.
func NewSignerEdDSA(kid string, key ed25519.PrivateKey) (*EdDSASigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 private key size")
	}
	return &EdDSASigner{
		kid: kid,
		key: key,
		pub: key.Public().(ed25519.PublicKey),
	}, nil
}

// NewEphemeralSigner generates a fresh Ed25519 keypair with a random kid.
// Tokens signed with it do not survive a process restart, which is fine
// when the same process also verifies them.
func NewEphemeralSigner() (*EdDSASigner, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate Ed25519 key: %w", err)
	}

	var kid [8]byte
	_, _ = rand.Read(kid[:])

	return NewSignerEdDSA(base64.RawURLEncoding.EncodeToString(kid[:]), key)
}

func (s *EdDSASigner) Alg() string { return jwt.SigningMethodEdDSA.Alg() }
func (s *EdDSASigner) KID() string { return s.kid }

func (s *EdDSASigner) Public() ed25519.PublicKey { return s.pub }

// Sign takes claims and turns them into a signed JWT string.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// EdDSAVerifier validates JWTs signed using EdDSA (Ed25519).
type EdDSAVerifier struct {
	keys   map[string]ed25519.PublicKey
	issuer string
}

// NewVerifierEdDSA creates a verifier from kid -> public key mappings.
func NewVerifierEdDSA(keys map[string]ed25519.PublicKey, issuer string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer}
}

// NewVerifierFromSigner creates a verifier trusting exactly the signer's key.
func NewVerifierFromSigner(s Signer, issuer string) *EdDSAVerifier {
	return NewVerifierEdDSA(map[string]ed25519.PublicKey{s.KID(): s.Public()}, issuer)
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}

		pub, ok := v.keys[kid]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
