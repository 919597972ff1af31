package validate

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "ibangate/pkg/platform/audit"
	"ibangate/pkg/platform/audit/store/memory"
)

// storePublisher appends straight to a memory store so tests can observe
// emitted events synchronously.
type storePublisher struct {
	store *memory.Store
}

func (p *storePublisher) Emit(ctx context.Context, event audit.Event) error {
	return p.store.Append(ctx, event)
}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, nil, &storePublisher{store: store}), store
}

func TestValidate_ValidInput(t *testing.T) {
	svc, store := newTestService(t)

	result := svc.Validate(context.Background(), "NL91ABNA0417164300")

	require.True(t, result.Valid)
	assert.Equal(t, "NL91ABNA0417164300", result.IBAN.String())
	assert.Empty(t, result.Reason)

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionIBANValidated, events[0].Action)
	assert.Equal(t, audit.OutcomeValid, events[0].Outcome)
	assert.Equal(t, "NL", events[0].Country)
	assert.NotContains(t, events[0].InputHash, "NL91", "audit trail must not carry the raw input")
}

func TestValidate_ClassifiesRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		reason  Reason
		outcome audit.Outcome
	}{
		{"garbage", "Shenanigans!", ReasonMalformed, audit.OutcomeMalformed},
		{"leading whitespace", " NL91ABNA0417164300", ReasonMalformed, audit.OutcomeMalformed},
		{"unknown country", "UU345678345543234", ReasonUnknownCountry, audit.OutcomeUnknownCountry},
		{"wrong checksum", "NL12ABNA0417164300", ReasonWrongChecksum, audit.OutcomeWrongChecksum},
		{"empty", "", ReasonMalformed, audit.OutcomeMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)

			result := svc.Validate(context.Background(), tt.input)

			assert.False(t, result.Valid)
			assert.True(t, result.IBAN.IsZero())
			assert.Equal(t, tt.reason, result.Reason)

			events, err := store.List(context.Background())
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tt.outcome, events[0].Outcome)
		})
	}
}

func TestValidate_AuditFailureIsFailOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, nil, failingPublisher{})

	result := svc.Validate(context.Background(), "NL91ABNA0417164300")
	assert.True(t, result.Valid, "a broken audit sink must not reject valid traffic")
}

type failingPublisher struct{}

func (failingPublisher) Emit(context.Context, audit.Event) error {
	return assert.AnError
}

func TestCountryLength(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, 18, svc.CountryLength("NL"))
	assert.Equal(t, -1, svc.CountryLength("nl"))
	assert.Equal(t, -1, svc.CountryLength("Bogus"))
}
