package ledger

import (
	"fmt"
	"time"
)

// Entry is one recorded per-note outcome.
type Entry struct {
	Path     string    `json:"path"`
	Outcome  string    `json:"outcome"`
	Detail   string    `json:"detail,omitempty"`
	SyncedAt time.Time `json:"synced_at"`
}

// Run is one recorded batch summary.
type Run struct {
	Synced     int       `json:"synced"`
	Skipped    int       `json:"skipped"`
	Errors     int       `json:"errors"`
	FinishedAt time.Time `json:"finished_at"`
}

// RecordOutcome appends one per-note outcome row.
func (db *DB) RecordOutcome(path, outcome, detail string) error {
	_, err := db.conn.Exec(
		`INSERT INTO outcomes (path, outcome, detail) VALUES (?, ?, ?)`,
		path, outcome, detail)
	if err != nil {
		return fmt.Errorf("ledger: record outcome: %w", err)
	}
	return nil
}

// RecordRun appends one batch summary row.
func (db *DB) RecordRun(synced, skipped, errors int) error {
	_, err := db.conn.Exec(
		`INSERT INTO runs (synced, skipped, errors) VALUES (?, ?, ?)`,
		synced, skipped, errors)
	if err != nil {
		return fmt.Errorf("ledger: record run: %w", err)
	}
	return nil
}

// Recent returns the newest outcome entries, newest first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.conn.Query(
		`SELECT path, outcome, detail, synced_at FROM outcomes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Outcome, &e.Detail, &e.SyncedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Runs returns the newest batch summaries, newest first.
func (db *DB) Runs(limit int) ([]Run, error) {
	if limit <= 0 || limit > 500 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT synced, skipped, errors, finished_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Synced, &r.Skipped, &r.Errors, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastOutcome returns the newest entry for a path, if any.
func (db *DB) LastOutcome(path string) (Entry, bool, error) {
	var e Entry
	err := db.conn.QueryRow(
		`SELECT path, outcome, detail, synced_at FROM outcomes WHERE path = ? ORDER BY id DESC LIMIT 1`,
		path).Scan(&e.Path, &e.Outcome, &e.Detail, &e.SyncedAt)
	if err != nil {
		return Entry{}, false, nil
	}
	return e, true, nil
}
