// Package validate wraps the iban library with the service-level concerns the
// API needs: outcome classification, metrics, tracing and the audit trail.
package validate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ibangate/internal/platform/metrics"
	"ibangate/internal/platform/middleware"
	"ibangate/pkg/iban"
	audit "ibangate/pkg/platform/audit"
)

// Reason mirrors the parse taxonomy for API consumers.
type Reason string

const (
	ReasonMalformed      Reason = "malformed"
	ReasonUnknownCountry Reason = "unknown_country"
	ReasonWrongChecksum  Reason = "wrong_checksum"
)

// Result is the outcome of a single validation. Exactly one of Valid/Reason
// is meaningful: a valid result carries the value object, an invalid one the
// rejection class.
type Result struct {
	Valid  bool
	IBAN   iban.IBAN
	Reason Reason
}

// Service validates candidate IBANs. It is stateless beyond observability
// dependencies and safe for concurrent use.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

func NewService(logger *slog.Logger, m *metrics.Metrics, publisher audit.Publisher) *Service {
	return &Service{
		logger:  logger,
		metrics: m,
		audit:   publisher,
		tracer:  otel.Tracer("ibangate/validate"),
	}
}

// Validate runs the full parse pipeline over raw and classifies the outcome.
// The submitted string is never logged or audited verbatim, only hashed.
func (s *Service) Validate(ctx context.Context, raw string) Result {
	ctx, span := s.tracer.Start(ctx, "validate.Validate")
	defer span.End()

	start := time.Now()
	parsed, err := iban.Parse(raw)
	elapsed := time.Since(start).Seconds()

	result := Result{Valid: err == nil, IBAN: parsed}
	outcome := audit.OutcomeValid
	if err != nil {
		result.Reason, outcome = classify(err)
	}

	span.SetAttributes(
		attribute.Bool("iban.valid", result.Valid),
		attribute.String("iban.outcome", string(outcome)),
		attribute.String("iban.country", parsed.CountryCode()),
	)
	s.metrics.ObserveValidation(string(outcome), elapsed)
	s.emit(ctx, audit.Event{
		Action:    audit.ActionIBANValidated,
		Outcome:   outcome,
		Country:   parsed.CountryCode(),
		InputHash: audit.HashInput(raw),
		RequestID: middleware.GetRequestID(ctx),
		ClientID:  middleware.GetClientID(ctx),
	})

	return result
}

// CountryLength mirrors the registry lookup: the registered length for a
// two-letter uppercase country code, or -1.
func (s *Service) CountryLength(code string) int {
	return iban.LengthForCountryCode(code)
}

func classify(err error) (Reason, audit.Outcome) {
	var unknown *iban.UnknownCountryError
	var checksum *iban.ChecksumError
	switch {
	case errors.As(err, &unknown):
		return ReasonUnknownCountry, audit.OutcomeUnknownCountry
	case errors.As(err, &checksum):
		return ReasonWrongChecksum, audit.OutcomeWrongChecksum
	default:
		return ReasonMalformed, audit.OutcomeMalformed
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	// Fail-open: a broken audit sink must not reject valid traffic.
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err,
		)
	}
}
