package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// dummyHash is verified against when a username does not exist, so the
// password grant takes the same time for unknown and known users. Computed
// lazily because hashing needs the pepper, which is configured at startup.
var dummyHash = sync.OnceValue(func() string {
	h, _ := cryptox.HashSecret("dummy-password-for-timing")
	return h
})

// AccountService owns user account lifecycle: authentication for the
// password grant, registration, claims, and security-question password
// resets.
type AccountService struct {
	Store store.Store
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords produce the identical error.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (domain.UserAccount, error) {
	return authenticate(ctx, s.Store, username, password)
}

// authenticate is the tx-friendly worker behind Authenticate. st may be the
// root store or a transaction view.
func authenticate(ctx context.Context, st store.Store, username, password string) (domain.UserAccount, error) {
	user, err := st.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same hashing work as the found path.
			_ = cryptox.VerifySecret(password, dummyHash())
			return domain.UserAccount{}, oauthx.ErrBadUserCredentials
		}
		return domain.UserAccount{}, err
	}

	if err := cryptox.VerifySecret(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			slogx.FromContext(ctx).Info("password grant rejected", slog.String("username", username))
			return domain.UserAccount{}, oauthx.ErrBadUserCredentials
		}
		return domain.UserAccount{}, err
	}

	return user, nil
}

// Claims returns a user's stored claims. Registration grants CUSTOMER up
// front, so a revoked claim stays revoked on later token mints.
func (s *AccountService) Claims(ctx context.Context, userID int64) ([]domain.Claim, error) {
	return s.Store.Users().GetUserClaims(ctx, userID)
}

// RegisterRequest carries the fields of a self-service registration.
type RegisterRequest struct {
	Username         string
	Password         string
	FirstName        string
	LastName         string
	SecurityQuestion string
	SecurityAnswer   string
}

// Register creates a new user account with the CUSTOMER claim. The account
// row and claim are written in one transaction.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (domain.UserAccount, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return domain.UserAccount{}, ErrInvalidCredentials
	}

	passwordHash, err := cryptox.HashSecret(req.Password)
	if err != nil {
		return domain.UserAccount{}, err
	}

	answerHash := ""
	if req.SecurityAnswer != "" {
		answerHash, err = cryptox.HashSecret(domain.NormalizeSecurityAnswer(req.SecurityAnswer))
		if err != nil {
			return domain.UserAccount{}, err
		}
	}

	user := domain.UserAccount{
		Username:           req.Username,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		PasswordHash:       passwordHash,
		SecurityQuestion:   strings.TrimSpace(req.SecurityQuestion),
		SecurityAnswerHash: answerHash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().CreateUser(ctx, user)
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}
		user.ID = id

		return tx.Users().AddUserClaim(ctx, id, domain.ClaimCustomer)
	})
	if err != nil {
		return domain.UserAccount{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID),
	)

	return user, nil
}

// SecurityQuestion returns the stored question for a username, for the
// forgot-password flow.
func (s *AccountService) SecurityQuestion(ctx context.Context, username string) (string, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.SecurityQuestion, nil
}

// ResetPassword sets a new password after checking the security answer.
// Answers are compared normalized, so spacing, punctuation and case do not
// matter. Every session the user holds is revoked in the same transaction
// as the password change.
func (s *AccountService) ResetPassword(ctx context.Context, username, securityAnswer, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.SecurityAnswerHash == "" {
		return ErrBadSecurityAnswer
	}
	if err := cryptox.VerifySecret(domain.NormalizeSecurityAnswer(securityAnswer), user.SecurityAnswerHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrBadSecurityAnswer
		}
		return err
	}

	newHash, err := cryptox.HashSecret(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, user.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset", slog.Int64("user_id", user.ID))
	return nil
}

// GrantClaim grants a claim to a user. Granting NONE is rejected.
func (s *AccountService) GrantClaim(ctx context.Context, userID int64, claim domain.Claim) error {
	if claim == domain.ClaimNone {
		return ErrInvalidCredentials
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.Store.Users().AddUserClaim(ctx, userID, claim)
}

// RevokeClaim removes a claim from a user.
func (s *AccountService) RevokeClaim(ctx context.Context, userID int64, claim domain.Claim) error {
	return s.Store.Users().RemoveUserClaim(ctx, userID, claim)
}

// Get returns a user account by id.
func (s *AccountService) Get(ctx context.Context, userID int64) (domain.UserAccount, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserAccount{}, ErrUserNotFound
		}
		return domain.UserAccount{}, err
	}
	return user, nil
}
