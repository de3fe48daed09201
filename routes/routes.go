// Package routes wires the HTTP surface of the service.
package routes

import (
	"net/http"

	"github.com/andrewpaige1/kioku-api/config"
	"github.com/andrewpaige1/kioku-api/handlers"
	"github.com/andrewpaige1/kioku-api/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter registers every route on a ServeMux and wraps it in the
// middleware chain. Request metrics are registered with reg, which is also
// what /metrics exposes.
func NewRouter(h *handlers.DBHandler, cfg *config.Config, log *zap.Logger, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("GET /users", h.GetUsers)
	mux.HandleFunc("GET /users/{id}", h.GetUserByID)
	mux.HandleFunc("POST /users", h.CreateUser)
	mux.HandleFunc("PUT /users/{id}", h.UpdateUserByID)
	mux.HandleFunc("DELETE /users/{id}", h.DeleteUserByID)

	// Cards
	mux.HandleFunc("GET /cards", h.GetCards)
	mux.HandleFunc("GET /cards/{id}", h.GetCardByID)
	mux.HandleFunc("POST /cards", h.CreateCard)
	mux.HandleFunc("PUT /cards/{id}", h.UpdateCardByID)
	mux.HandleFunc("DELETE /cards/{id}", h.DeleteCardByID)

	// Decks
	mux.HandleFunc("GET /decks", h.GetDecks)
	mux.HandleFunc("GET /decks/{id}", h.GetDeckByID)
	mux.HandleFunc("POST /decks", h.CreateDeck)
	mux.HandleFunc("PUT /decks/{id}", h.UpdateDeckByID)
	mux.HandleFunc("DELETE /decks/{id}", h.DeleteDeckByID)

	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	metrics := middleware.NewMetrics(reg)

	return middleware.Chain(mux,
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RequestID,
		middleware.Logger(log),
		metrics.Middleware(mux),
		middleware.Recovery(log),
		middleware.Timeout(cfg.RequestTimeout),
	)
}
