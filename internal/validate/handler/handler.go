package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ibangate/internal/transport/http/shared"
	"ibangate/internal/validate"
	dErrors "ibangate/pkg/domain-errors"
)

// Service defines the interface for validation operations.
type Service interface {
	Validate(ctx context.Context, raw string) validate.Result
	CountryLength(code string) int
}

// Handler exposes the validation endpoints. It delegates to the service and
// keeps transport concerns isolated.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the validation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/iban/validate", h.handleValidate)
	r.Get("/v1/iban/countries/{code}", h.handleCountryLength)
}

type validateRequest struct {
	IBAN string `json:"iban"`
}

type validateResponse struct {
	Valid       bool   `json:"valid"`
	IBAN        string `json:"iban,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	CheckDigits string `json:"check_digits,omitempty"`
	Formatted   string `json:"formatted,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Input       string `json:"input,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	result := h.service.Validate(r.Context(), req.IBAN)
	if !result.Valid {
		// A rejection is still a successful validation call; the envelope
		// echoes the submitted input so callers can report what was refused.
		shared.WriteJSON(w, http.StatusOK, validateResponse{
			Valid:  false,
			Reason: string(result.Reason),
			Input:  req.IBAN,
		})
		return
	}

	shared.WriteJSON(w, http.StatusOK, validateResponse{
		Valid:       true,
		IBAN:        result.IBAN.String(),
		CountryCode: result.IBAN.CountryCode(),
		CheckDigits: result.IBAN.CheckDigits(),
		Formatted:   result.IBAN.Format(),
	})
}

type countryResponse struct {
	Country string `json:"country"`
	Length  int    `json:"length"`
}

func (h *Handler) handleCountryLength(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	length := h.service.CountryLength(code)
	if length < 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown country code"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, countryResponse{Country: code, Length: length})
}
