// Package service implements account registration over validated IBANs.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ibangate/internal/account"
	"ibangate/internal/account/store"
	"ibangate/internal/platform/metrics"
	"ibangate/internal/platform/middleware"
	dErrors "ibangate/pkg/domain-errors"
	"ibangate/pkg/iban"
	audit "ibangate/pkg/platform/audit"
)

const maxLabelLength = 100

// Service registers and restores validated accounts. Every IBAN entering a
// record passed the full parse pipeline; every record leaving a store passed
// it again.
type Service struct {
	logger  *slog.Logger
	store   store.Store
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
	clock   func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(st store.Store, logger *slog.Logger, m *metrics.Metrics, publisher audit.Publisher, opts ...Option) *Service {
	s := &Service{
		logger:  logger,
		store:   st,
		metrics: m,
		audit:   publisher,
		tracer:  otel.Tracer("ibangate/account"),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register validates rawIBAN, persists a new account and returns it.
func (s *Service) Register(ctx context.Context, rawIBAN, label string) (account.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.Register")
	defer span.End()

	label = strings.TrimSpace(label)
	if label == "" {
		return account.Account{}, dErrors.New(dErrors.CodeInvalidInput, "label is required")
	}
	if len(label) > maxLabelLength {
		return account.Account{}, dErrors.New(dErrors.CodeInvalidInput, "label too long")
	}

	parsed, err := iban.Parse(rawIBAN)
	if err != nil {
		return account.Account{}, rejectParse(err)
	}

	acct := account.Account{
		ID:        uuid.New(),
		IBAN:      parsed,
		Label:     label,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.store.Save(ctx, acct); err != nil {
		s.logger.ErrorContext(ctx, "failed to save account", "error", err)
		return account.Account{}, dErrors.Wrap(dErrors.CodeInternal, "failed to save account", err)
	}

	span.SetAttributes(attribute.String("iban.country", parsed.CountryCode()))
	s.metrics.IncAccountsRegistered()
	s.emit(ctx, audit.Event{
		Action:    audit.ActionAccountRegistered,
		Outcome:   audit.OutcomeValid,
		Country:   parsed.CountryCode(),
		InputHash: audit.HashInput(parsed.String()),
		RequestID: middleware.GetRequestID(ctx),
		ClientID:  middleware.GetClientID(ctx),
	})
	return acct, nil
}

// Get restores an account by ID. A stored record that fails re-validation
// aborts with CodeIntegrity; no partially valid account is ever returned.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (account.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.Get")
	defer span.End()

	if id == uuid.Nil {
		return account.Account{}, dErrors.New(dErrors.CodeInvalidInput, "account id is required")
	}

	acct, err := s.store.FindByID(ctx, id)
	if err != nil {
		return account.Account{}, s.restoreError(ctx, id, err)
	}
	return acct, nil
}

// List restores all accounts.
func (s *Service) List(ctx context.Context) ([]account.Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.List")
	defer span.End()

	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, s.restoreError(ctx, uuid.Nil, err)
	}
	return accounts, nil
}

func (s *Service) restoreError(ctx context.Context, id uuid.UUID, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "account not found")
	}

	var integrity *iban.IntegrityError
	if errors.As(err, &integrity) {
		s.metrics.IncRestoreIntegrityFail()
		s.logger.ErrorContext(ctx, "stored account failed re-validation",
			"account_id", id,
			"error", err,
		)
		s.emit(ctx, audit.Event{
			Action:    audit.ActionRestoreRejected,
			InputHash: audit.HashInput(integrity.Encoded),
			RequestID: middleware.GetRequestID(ctx),
		})
		return dErrors.Wrap(dErrors.CodeIntegrity, "stored account failed validation", err)
	}

	s.logger.ErrorContext(ctx, "failed to load account", "account_id", id, "error", err)
	return dErrors.Wrap(dErrors.CodeInternal, "failed to load account", err)
}

func rejectParse(err error) error {
	var unknown *iban.UnknownCountryError
	var checksum *iban.ChecksumError
	switch {
	case errors.As(err, &unknown):
		return dErrors.Wrap(dErrors.CodeInvalidInput, "unknown country code", err)
	case errors.As(err, &checksum):
		return dErrors.Wrap(dErrors.CodeInvalidInput, "checksum mismatch", err)
	default:
		return dErrors.Wrap(dErrors.CodeInvalidInput, "malformed iban", err)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err,
		)
	}
}
