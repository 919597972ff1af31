package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ibangate/internal/account"
)

// Postgres persists accounts in PostgreSQL. Only the normalized IBAN text is
// stored; the display form is always recomputed. Restoring a row scans the
// iban column through the value object's Scanner, so tampered rows surface
// *iban.IntegrityError instead of producing a broken instance.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed account store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// InitSchema creates the accounts table when it does not exist yet.
func (s *Postgres) InitSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			iban TEXT NOT NULL,
			label TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init accounts schema: %w", err)
	}
	return nil
}

func (s *Postgres) Save(ctx context.Context, acct account.Account) error {
	const query = `
		INSERT INTO accounts (id, iban, label, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			iban = EXCLUDED.iban,
			label = EXCLUDED.label
	`
	_, err := s.db.ExecContext(ctx, query, acct.ID, acct.IBAN, acct.Label, acct.CreatedAt)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	const query = `SELECT id, iban, label, created_at FROM accounts WHERE id = $1`

	var acct account.Account
	err := s.db.QueryRowContext(ctx, query, id).Scan(&acct.ID, &acct.IBAN, &acct.Label, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Account{}, ErrNotFound
		}
		return account.Account{}, fmt.Errorf("find account: %w", err)
	}
	return acct, nil
}

func (s *Postgres) List(ctx context.Context) ([]account.Account, error) {
	const query = `SELECT id, iban, label, created_at FROM accounts ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		var acct account.Account
		if err := rows.Scan(&acct.ID, &acct.IBAN, &acct.Label, &acct.CreatedAt); err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
