package sqlite

import (
	"context"
	"time"

	"github.com/lotworks/opls/internal/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, first_name, last_name, password_hash,
	security_question, security_answer_hash, created_at, updated_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.UserAccount, error) {
	var u domain.UserAccount
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.SecurityQuestion,
		&u.SecurityAnswerHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.UserAccount{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.UserAccount, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user_accounts WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.UserAccount, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user_accounts WHERE username = ?`, username)
	return r.scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.UserAccount) (int64, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_accounts
			(username, first_name, last_name, password_hash,
			 security_question, security_answer_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.FirstName, u.LastName, u.PasswordHash,
		u.SecurityQuestion, u.SecurityAnswerHash, now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_accounts WHERE id = ?`, userID)
	return err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_accounts`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) GetUserClaims(ctx context.Context, userID int64) ([]domain.Claim, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT claim FROM user_account_claims WHERE user_id = ? ORDER BY claim`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		claims = append(claims, domain.Claim(c))
	}
	return claims, rows.Err()
}

func (r *usersRepo) AddUserClaim(ctx context.Context, userID int64, claim domain.Claim) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_account_claims (user_id, claim) VALUES (?, ?)`,
		userID, string(claim))
	return err
}

func (r *usersRepo) RemoveUserClaim(ctx context.Context, userID int64, claim domain.Claim) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_account_claims WHERE user_id = ? AND claim = ?`,
		userID, string(claim))
	return err
}
