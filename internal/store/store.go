package store

import (
	"context"
	"errors"

	"github.com/lotworks/opls/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable, and to stop callers accidentally nesting
// transactions.
type Store interface {
	Users() Users
	Clients() Clients
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g. refresh
	// token rotation). The caller MUST call Commit() or Rollback() on the
	// returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user account by its row id.
	GetUserByID(ctx context.Context, id int64) (domain.UserAccount, error)

	// GetUserByUsername is used during the password grant.
	GetUserByUsername(ctx context.Context, username string) (domain.UserAccount, error)

	// CreateUser inserts a new user account and returns the assigned id.
	CreateUser(ctx context.Context, u domain.UserAccount) (int64, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error

	// DeleteUser cascades to claims and sessions (per schema).
	DeleteUser(ctx context.Context, userID int64) error

	// IsEmpty returns true if there are no user accounts.
	IsEmpty(ctx context.Context) (bool, error)

	// GetUserClaims returns the authorization claims granted to a user.
	GetUserClaims(ctx context.Context, userID int64) ([]domain.Claim, error)

	// AddUserClaim grants a claim to a user. Granting an already-held
	// claim is a no-op.
	AddUserClaim(ctx context.Context, userID int64, claim domain.Claim) error

	// RemoveUserClaim revokes a claim from a user.
	RemoveUserClaim(ctx context.Context, userID int64, claim domain.Claim) error
}

type Clients interface {
	// GetClientByClientID fetches a client by its public identifier.
	GetClientByClientID(ctx context.Context, clientID string) (domain.Client, error)

	// GetClientByCredentials fetches the client matching both the public
	// identifier and the secret fingerprint in a single lookup.
	GetClientByCredentials(ctx context.Context, clientID, secretFingerprint string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client (row id is a ULID).
	CreateClient(ctx context.Context, c domain.Client) error

	// DeleteClient cascades to sessions (per schema). Returns ErrNotFound
	// when no client matches.
	DeleteClient(ctx context.Context, clientID string) error

	// IsEmpty returns true if there are no clients.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session owning the fingerprinted
	// refresh token.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// DeleteSession removes a session by row id. Deleting a session that
	// no longer exists is not an error.
	DeleteSession(ctx context.Context, id string) error

	// DeleteUserClientSessions bulk-deletes a user+client pair's sessions.
	DeleteUserClientSessions(ctx context.Context, userID int64, clientID string) error

	// DeleteUserSessions bulk-deletes every session belonging to a user
	// (e.g. password reset).
	DeleteUserSessions(ctx context.Context, userID int64) error

	// DeleteExpiredSessions removes sessions whose expiry has passed and
	// reports how many were deleted.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
