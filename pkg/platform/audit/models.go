// Package audit captures validation and registration outcomes for the audit
// trail. Events are PII-light: the submitted account number never appears in
// an event, only a SHA-256 digest that allows correlating repeated attempts.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Outcome classifies how a validation ended.
type Outcome string

const (
	OutcomeValid          Outcome = "valid"
	OutcomeMalformed      Outcome = "malformed"
	OutcomeUnknownCountry Outcome = "unknown_country"
	OutcomeWrongChecksum  Outcome = "wrong_checksum"
)

// Audited actions.
const (
	ActionIBANValidated     = "iban_validated"
	ActionAccountRegistered = "account_registered"
	ActionRestoreRejected   = "restore_rejected"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	Country   string    `json:"country,omitempty"`
	InputHash string    `json:"input_hash,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
}

// HashInput digests a submitted value for traceability without storing it.
func HashInput(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Publisher is the producer-side contract. Services emit and move on; delivery
// semantics belong to the implementation.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Store is the sink-side contract for persisted audit trails.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}
