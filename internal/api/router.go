package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/perhult/reelsync/internal/ledger"
	"github.com/perhult/reelsync/internal/sse"
	"github.com/perhult/reelsync/internal/sync"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(syncer *sync.Syncer, db *ledger.DB, broker *sse.Broker, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(syncer, db, broker)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Sync.
	r.Post("/sync", h.SyncAll)
	r.Post("/sync/*", h.SyncNote)

	// Note creation from an identifier.
	r.Post("/notes", h.CreateNote)

	// History.
	r.Get("/history", h.History)
	r.Get("/history/runs", h.Runs)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
