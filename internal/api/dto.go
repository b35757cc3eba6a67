package api

import (
	"github.com/perhult/reelsync/internal/ledger"
)

// CreateNoteRequest is the request body for creating a note from an IMDb
// identifier or title URL.
type CreateNoteRequest struct {
	Input string `json:"input" example:"tt3896198"`
}

// CreateNoteResponse is returned after a note has been created.
type CreateNoteResponse struct {
	Path string `json:"path" example:"Movies/Heat (1995).md"`
}

// SyncNoteResponse reports the outcome of a single-note sync.
type SyncNoteResponse struct {
	Path    string `json:"path" example:"Movies/Heat (1995).md"`
	Outcome string `json:"outcome" example:"synced"`
}

// SyncStartedResponse acknowledges an accepted batch sync.
type SyncStartedResponse struct {
	Status string `json:"status" example:"started"`
}

// HistoryResponse wraps recent per-note outcomes.
type HistoryResponse struct {
	Entries []ledger.Entry `json:"entries"`
}

// RunsResponse wraps recent batch run summaries.
type RunsResponse struct {
	Runs []ledger.Run `json:"runs"`
}
