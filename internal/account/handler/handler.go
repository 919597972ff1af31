package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ibangate/internal/account"
	"ibangate/internal/transport/http/shared"
	dErrors "ibangate/pkg/domain-errors"
)

// Service defines the interface for account operations.
type Service interface {
	Register(ctx context.Context, rawIBAN, label string) (account.Account, error)
	Get(ctx context.Context, id uuid.UUID) (account.Account, error)
	List(ctx context.Context) ([]account.Account, error)
}

// Handler exposes the account registry endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the account routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/accounts", h.handleRegister)
	r.Get("/v1/accounts/{id}", h.handleGet)
	r.Get("/v1/accounts", h.handleList)
}

type registerRequest struct {
	IBAN  string `json:"iban"`
	Label string `json:"label"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	IBAN      string    `json:"iban"`
	Formatted string    `json:"formatted"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(acct account.Account) accountResponse {
	return accountResponse{
		ID:        acct.ID.String(),
		IBAN:      acct.IBAN.String(),
		Formatted: acct.IBAN.Format(),
		Label:     acct.Label,
		CreatedAt: acct.CreatedAt,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	acct, err := h.service.Register(r.Context(), req.IBAN, req.Label)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, toResponse(acct))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid account id"))
		return
	}

	acct, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, toResponse(acct))
}

type listResponse struct {
	Accounts []accountResponse `json:"accounts"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	out := listResponse{Accounts: make([]accountResponse, 0, len(accounts))}
	for _, acct := range accounts {
		out.Accounts = append(out.Accounts, toResponse(acct))
	}
	shared.WriteJSON(w, http.StatusOK, out)
}
