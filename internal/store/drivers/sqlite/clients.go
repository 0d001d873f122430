package sqlite

import (
	"context"
	"time"

	"github.com/lotworks/opls/internal/domain"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/idx"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, client_id, secret_hash, name, created_at, updated_at`

func (r *clientsRepo) scanClient(row interface{ Scan(...any) error }) (domain.Client, error) {
	var (
		c  domain.Client
		id string
	)
	err := row.Scan(
		&id,
		&c.ClientID,
		&c.SecretFingerprint,
		&c.Name,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}

	c.ID, err = idx.Parse(id)
	if err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func (r *clientsRepo) GetClientByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE client_id = ?`, clientID)
	return r.scanClient(row)
}

func (r *clientsRepo) GetClientByCredentials(ctx context.Context, clientID, secretFingerprint string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE client_id = ? AND secret_hash = ?`,
		clientID, secretFingerprint)
	return r.scanClient(row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, client_id, secret_hash, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.ClientID, c.SecretFingerprint, c.Name, now, now,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE client_id = ?`, clientID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
