package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/pkg/idx"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	var userID sql.NullInt64
	if s.UserID != nil {
		userID = sql.NullInt64{Int64: *s.UserID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token_hash, client_id, user_id, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID.String(), s.TokenHash, s.ClientID, userID, s.ExpiresAt, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	var (
		s      domain.Session
		id     string
		userID sql.NullInt64
	)

	row := r.db.QueryRowContext(ctx,
		`SELECT id, token_hash, client_id, user_id, expires_at, created_at
		 FROM sessions WHERE token_hash = ?`, tokenHash)

	err := row.Scan(&id, &s.TokenHash, &s.ClientID, &userID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.ID, err = idx.Parse(id)
	if err != nil {
		return domain.Session{}, err
	}
	if userID.Valid {
		s.UserID = &userID.Int64
	}
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *sessionsRepo) DeleteUserClientSessions(ctx context.Context, userID int64, clientID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ? AND client_id = ?`, userID, clientID)
	return err
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
