package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/perhult/reelsync/internal/apperr"
	"github.com/perhult/reelsync/internal/ledger"
	"github.com/perhult/reelsync/internal/sse"
	"github.com/perhult/reelsync/internal/sync"
)

// Handler holds API route handlers.
type Handler struct {
	syncer *sync.Syncer
	db     *ledger.DB
	broker *sse.Broker

	syncing atomic.Bool
}

// NewHandler creates a new Handler. db and broker may be nil; the history
// endpoints then report empty results and batch progress is not streamed.
func NewHandler(syncer *sync.Syncer, db *ledger.DB, broker *sse.Broker) *Handler {
	return &Handler{syncer: syncer, db: db, broker: broker}
}

// notePath extracts the note path from the URL (everything after /api/sync/).
// Supports encoded slashes from OpenAPI clients (e.g. Movies%2FHeat.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// SyncAll handles POST /api/sync.
//
// The batch runs in the background; per-note progress and the final tally go
// out over the SSE stream. Only one batch may run at a time.
//
//	@Summary		Start a batch sync over the configured folders
//	@Tags			sync
//	@Produce		json
//	@Success		202	{object}	SyncStartedResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sync [post]
func (h *Handler) SyncAll(w http.ResponseWriter, r *http.Request) {
	if !h.syncing.CompareAndSwap(false, true) {
		writeJSON(w, http.StatusConflict, errorBody("sync already running"))
		return
	}

	// Detached from the request context: the batch outlives the HTTP call.
	go func() {
		defer h.syncing.Store(false)
		if h.broker != nil {
			h.broker.Publish(sse.Event{Type: "sync.started", Data: map[string]string{}})
		}
		tally, err := h.syncer.SyncAll(context.Background())
		if err != nil {
			slog.Error("batch sync failed", slog.String("error", err.Error()))
		}
		if h.broker != nil {
			h.broker.Publish(sse.Event{Type: "sync.finished", Data: tally})
		}
	}()

	writeJSON(w, http.StatusAccepted, SyncStartedResponse{Status: "started"})
}

// SyncNote handles POST /api/sync/*.
//
//	@Summary		Sync a single note by vault path
//	@Tags			sync
//	@Produce		json
//	@Param			path	path		string	true	"Note path"
//	@Success		200		{object}	SyncNoteResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sync/{path} [post]
func (h *Handler) SyncNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}

	outcome, err := h.syncer.SyncNote(r.Context(), path, true)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrMissingAPIKey):
			writeJSON(w, http.StatusBadRequest, errorBody("OMDb API key is not configured"))
		default:
			slog.Error("sync note failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, SyncNoteResponse{Path: path, Outcome: outcome.String()})
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a note from an IMDb ID or title URL
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Identifier or URL"
//	@Success		201		{object}	CreateNoteResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("input is required"))
		return
	}

	path, err := h.syncer.CreateNote(r.Context(), req.Input)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidIdentifier):
			writeJSON(w, http.StatusBadRequest, errorBody("not a valid IMDb ID or title URL"))
		case errors.Is(err, apperr.ErrAlreadyExists):
			writeJSON(w, http.StatusConflict, errorBody("note already exists"))
		case errors.Is(err, apperr.ErrMissingAPIKey):
			writeJSON(w, http.StatusBadRequest, errorBody("OMDb API key is not configured"))
		default:
			slog.Error("create note failed", slog.String("input", req.Input), slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusCreated, CreateNoteResponse{Path: path})
}

// History handles GET /api/history.
//
//	@Summary		List recent per-note sync outcomes, newest first
//	@Tags			history
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries"
//	@Success		200		{object}	HistoryResponse
//	@Security		BearerAuth
//	@Router			/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries := []ledger.Entry{}
	if h.db != nil {
		var err error
		entries, err = h.db.Recent(limit)
		if err != nil {
			slog.Error("history failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
}

// Runs handles GET /api/history/runs.
//
//	@Summary		List recent batch run summaries, newest first
//	@Tags			history
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries"
//	@Success		200		{object}	RunsResponse
//	@Security		BearerAuth
//	@Router			/history/runs [get]
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs := []ledger.Run{}
	if h.db != nil {
		var err error
		runs, err = h.db.Runs(limit)
		if err != nil {
			slog.Error("runs failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
	}
	writeJSON(w, http.StatusOK, RunsResponse{Runs: runs})
}
