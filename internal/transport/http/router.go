// Package httptransport wires the HTTP surface. Handlers stay thin and
// delegate to domain services; cross-cutting concerns live in middleware.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounthandler "ibangate/internal/account/handler"
	"ibangate/internal/platform/middleware"
	validatehandler "ibangate/internal/validate/handler"
)

// Deps carries everything the router needs. Validation endpoints are public;
// the account registry requires a bearer token.
type Deps struct {
	Logger       *slog.Logger
	JWTValidator middleware.JWTValidator
	Validate     validatehandler.Service
	Accounts     accounthandler.Service
}

// NewRouter assembles the full route tree with shared middleware.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		validatehandler.New(deps.Validate, deps.Logger).Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		accounthandler.New(deps.Accounts, deps.Logger).Register(r)
	})

	return r
}
