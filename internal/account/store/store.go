package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ibangate/internal/account"
)

// ErrNotFound keeps store-specific 404s consistent across the in-memory,
// PostgreSQL and cached implementations.
var ErrNotFound = errors.New("account not found")

// Store is implemented by every account persistence backend. Implementations
// must uphold the restore contract: FindByID and List either return records
// whose IBAN passed re-validation, or fail with *iban.IntegrityError wrapped
// in the returned error. A corrupted row never yields an Account.
type Store interface {
	Save(ctx context.Context, acct account.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (account.Account, error)
	List(ctx context.Context) ([]account.Account, error)
}
