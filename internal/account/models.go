// Package account holds validated bank accounts registered through the API.
// The IBAN field is the validated value object: a record can only exist for
// input that passed the full parse pipeline, and restoring a record re-runs
// that pipeline.
package account

import (
	"time"

	"github.com/google/uuid"

	"ibangate/pkg/iban"
)

// Account is a registered, validated bank account.
type Account struct {
	ID        uuid.UUID
	IBAN      iban.IBAN
	Label     string
	CreatedAt time.Time
}
