package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/idx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// ClientService authenticates API clients from the token endpoint's
// Authorization header and manages client registrations.
type ClientService struct {
	Store store.Store
}

// FromAuthorizationHeader parses the "basic base64url(id:secret)" header
// and returns the matching client. Every structural problem with the header
// collapses into ErrMalformedAuthHeader; an intact header whose credentials
// match no client yields ErrClientNotFound.
func (s *ClientService) FromAuthorizationHeader(ctx context.Context, header string) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	clientID, secret, err := parseBasicCredentials(header)
	if err != nil {
		l.Info("client authentication rejected", slog.String("reason", "malformed header"))
		return domain.Client{}, oauthx.ErrMalformedAuthHeader
	}

	client, err := s.Store.Clients().GetClientByCredentials(ctx, clientID, cryptox.FingerprintToken(secret))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("client authentication rejected", slog.String("client_id", clientID))
			return domain.Client{}, oauthx.ErrClientNotFound
		}
		return domain.Client{}, err
	}

	return client, nil
}

// parseBasicCredentials decodes the header into the id and secret pair. The
// scheme word is matched case-insensitively. Both padded and unpadded
// base64url payloads are accepted.
func parseBasicCredentials(header string) (clientID, secret string, err error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return "", "", oauthx.ErrMalformedAuthHeader
	}

	decoded, err := base64.URLEncoding.DecodeString(parts[1])
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(parts[1])
		if err != nil {
			return "", "", oauthx.ErrMalformedAuthHeader
		}
	}

	cred := strings.Split(string(decoded), ":")
	if len(cred) != 2 {
		return "", "", oauthx.ErrMalformedAuthHeader
	}

	return cred[0], cred[1], nil
}

// CreateClient registers a new client with a generated id and secret. The
// plaintext secret is returned exactly once; only its fingerprint is stored.
func (s *ClientService) CreateClient(ctx context.Context, name string) (domain.Client, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.ClientNameMaxLen {
		return domain.Client{}, "", ErrInvalidClientName
	}

	clientID, err := cryptox.RandomString(domain.ClientIDLength)
	if err != nil {
		return domain.Client{}, "", err
	}
	secret, err := cryptox.RandomString(domain.ClientSecretLength)
	if err != nil {
		return domain.Client{}, "", err
	}

	client := domain.Client{
		ID:                idx.New(),
		ClientID:          clientID,
		SecretFingerprint: cryptox.FingerprintToken(secret),
		Name:              name,
	}

	if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
		return domain.Client{}, "", err
	}

	slogx.FromContext(ctx).Info("client registered",
		slog.String("client_id", client.ClientID),
		slog.String("name", client.Name),
	)

	return client, secret, nil
}

// ListClients returns all registered clients, newest first.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// DeleteClient removes a client. Its sessions are cascaded away by the
// schema.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	return s.Store.Clients().DeleteClient(ctx, clientID)
}
