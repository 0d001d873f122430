package service

import (
	"context"
	"log/slog"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/idx"
	"github.com/lotworks/opls/pkg/slogx"
)

// BootstrapConfig names the seed client and admin account created on first
// start against an empty database.
type BootstrapConfig struct {
	ClientID     string
	ClientSecret string
	ClientName   string

	AdminUsername         string
	AdminPassword         string
	AdminSecurityQuestion string
	AdminSecurityAnswer   string
}

// BootstrapService seeds an empty database with the configured client and
// admin user, so a fresh deployment can authenticate immediately.
type BootstrapService struct {
	Store  store.Store
	Config BootstrapConfig
}

// Ensure creates the seed client and admin user if their tables are empty.
// It is idempotent and safe to call on every startup.
func (s *BootstrapService) Ensure(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	clientsEmpty, err := s.Store.Clients().IsEmpty(ctx)
	if err != nil {
		return err
	}

	if clientsEmpty {
		clientID, secret := s.Config.ClientID, s.Config.ClientSecret
		generated := false
		if clientID == "" || secret == "" {
			if clientID, err = cryptox.RandomString(domain.ClientIDLength); err != nil {
				return err
			}
			if secret, err = cryptox.RandomString(domain.ClientSecretLength); err != nil {
				return err
			}
			generated = true
		}

		client := domain.Client{
			ID:                idx.New(),
			ClientID:          clientID,
			SecretFingerprint: cryptox.FingerprintToken(secret),
			Name:              s.Config.ClientName,
		}
		if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
			return err
		}
		l.Info("seed client created",
			slog.String("client_id", client.ClientID),
			slog.String("name", client.Name),
		)
		if generated {
			// Printed exactly once; the fingerprint cannot be reversed later.
			l.Warn("seed client secret generated",
				slog.String("client_id", clientID),
				slog.String("client_secret", secret),
			)
		}
	}

	usersEmpty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !usersEmpty {
		return nil
	}

	passwordHash, err := cryptox.HashSecret(s.Config.AdminPassword)
	if err != nil {
		return err
	}

	answerHash := ""
	if s.Config.AdminSecurityAnswer != "" {
		answerHash, err = cryptox.HashSecret(domain.NormalizeSecurityAnswer(s.Config.AdminSecurityAnswer))
		if err != nil {
			return err
		}
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().CreateUser(ctx, domain.UserAccount{
			Username:           s.Config.AdminUsername,
			PasswordHash:       passwordHash,
			SecurityQuestion:   s.Config.AdminSecurityQuestion,
			SecurityAnswerHash: answerHash,
		})
		if err != nil {
			return err
		}

		for _, claim := range []domain.Claim{domain.ClaimAdmin, domain.ClaimCustomer} {
			if err := tx.Users().AddUserClaim(ctx, id, claim); err != nil {
				return err
			}
		}

		l.Info("seed admin user created",
			slog.String("username", s.Config.AdminUsername),
			slog.Int64("user_id", id),
		)
		return nil
	})
}
