// Package sync implements the note synchronization pipeline: per-note sync,
// batch orchestration over the configured folders, and creation of new notes
// from an identifier.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	gopath "path"
	"strings"

	"github.com/perhult/reelsync/internal/apperr"
	"github.com/perhult/reelsync/internal/frontmatter"
	"github.com/perhult/reelsync/internal/omdb"
	"github.com/perhult/reelsync/internal/transform"
	"github.com/perhult/reelsync/internal/vault"
)

// EventCallback is called after each note's processing with the outcome
// kind ("synced", "skipped", "error", "created") and the note path.
type EventCallback func(kind, path string)

// Recorder persists per-note outcomes and batch summaries.
// Consumers depend on this interface rather than the concrete ledger type.
type Recorder interface {
	RecordOutcome(path, outcome, detail string) error
	RecordRun(synced, skipped, errors int) error
}

// Syncer coordinates vault, OMDb client, and configuration.
type Syncer struct {
	vault    vault.Provider
	client   *omdb.Client
	cfg      Config
	notifier Notifier
	log      *slog.Logger

	rec Recorder
	cb  EventCallback
}

// New creates a Syncer. notifier may be nil, in which case messages go to
// the logger.
func New(v vault.Provider, client *omdb.Client, cfg Config, notifier Notifier, logger *slog.Logger) *Syncer {
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	return &Syncer{
		vault:    v,
		client:   client,
		cfg:      cfg,
		notifier: notifier,
		log:      logger,
	}
}

// SetRecorder attaches an outcome recorder. Nil disables recording.
func (s *Syncer) SetRecorder(r Recorder) {
	s.rec = r
}

// SetEventCallback attaches a per-note event callback. Nil disables events.
func (s *Syncer) SetEventCallback(cb EventCallback) {
	s.cb = cb
}

// Config returns the sync configuration in use.
func (s *Syncer) Config() Config {
	return s.cfg
}

// SyncNote runs the per-note state machine for one vault note. In silent
// mode per-note notifications are suppressed and failures only logged, as
// used by the batch loop and the watcher.
func (s *Syncer) SyncNote(ctx context.Context, path string, silent bool) (Outcome, error) {
	outcome, finalPath, err := s.syncNote(ctx, path)
	s.record(finalPath, outcome, err)
	s.emit(outcome.String(), finalPath)

	switch {
	case err != nil:
		if silent {
			s.log.Warn("sync failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			s.notifier.Notify(fmt.Sprintf("Sync failed for %s: %v", path, err))
		}
	case outcome == OutcomeSkipped:
		if !silent {
			s.notifier.Notify(fmt.Sprintf("Skipped %s: no %s property", path, s.cfg.IdentifierProperty))
		}
	default:
		if !silent {
			s.notifier.Notify(fmt.Sprintf("Synced %s", finalPath))
		}
	}
	return outcome, err
}

// syncNote is the state machine body. It returns the note's final path,
// which differs from the input only after a successful rename.
func (s *Syncer) syncNote(ctx context.Context, path string) (Outcome, string, error) {
	data, err := s.vault.Read(path)
	if err != nil {
		return OutcomeError, path, err
	}

	fm, _, ok := frontmatter.Split(data)
	if !ok {
		return OutcomeSkipped, path, nil
	}
	id, ok := fm.GetString(s.cfg.IdentifierProperty)
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return OutcomeSkipped, path, nil
	}

	if !s.client.HasKey() {
		return OutcomeError, path, apperr.ErrMissingAPIKey
	}

	rec, err := s.client.Lookup(ctx, id)
	if err != nil {
		return OutcomeError, path, err
	}
	if rec.Failed() {
		return OutcomeError, path, fmt.Errorf("omdb: %s: %s", id, rec.Error)
	}

	if err := s.applyRecord(path, rec); err != nil {
		return OutcomeError, path, err
	}

	finalPath := path
	if s.cfg.RenameOnSync {
		finalPath = s.maybeRename(path, rec)
	}
	return OutcomeSynced, finalPath, nil
}

// applyRecord merges the fetched record into the note's frontmatter through
// the vault's scoped read-modify-write. Absent fields and the N/A sentinel
// leave any existing property untouched; everything else overwrites.
func (s *Syncer) applyRecord(path string, rec *omdb.Record) error {
	return s.vault.UpdateFrontmatter(path, func(m *frontmatter.Mapping) error {
		for _, fm := range s.cfg.Mappings {
			if !fm.Enabled {
				continue
			}
			v, ok := rec.Field(fm.Field)
			if !ok {
				continue
			}
			if !v.IsRatings() && v.Str == omdb.NotAvailable {
				continue
			}
			if err := m.Set(fm.TargetProperty(), transform.Value(fm.Field, v.Raw())); err != nil {
				return err
			}
		}
		return nil
	})
}

// maybeRename renames the note to its derived base name. The rename is
// idempotent and non-fatal: name collisions and rename failures are logged
// and the already-merged metadata stays in place.
func (s *Syncer) maybeRename(path string, rec *omdb.Record) string {
	name := transform.SanitizeFilename(desiredBaseName(rec))
	if name == "" {
		return path
	}
	current := strings.TrimSuffix(gopath.Base(path), ".md")
	if name == current {
		return path
	}
	newPath := gopath.Join(gopath.Dir(path), name+".md")
	if err := s.vault.Rename(path, newPath); err != nil {
		s.log.Warn("rename failed",
			slog.String("path", path),
			slog.String("target", newPath),
			slog.String("error", err.Error()))
		return path
	}
	s.log.Debug("renamed", slog.String("from", path), slog.String("to", newPath))
	return newPath
}

// desiredBaseName is "{Title} ({Year})" for feature films with a year,
// bare "{Title}" for everything else.
func desiredBaseName(rec *omdb.Record) string {
	title := rec.Title()
	if title == "" {
		return ""
	}
	if rec.IsMovie() {
		if y := rec.Year(); y != "" {
			return fmt.Sprintf("%s (%s)", title, y)
		}
	}
	return title
}

// SyncAll walks the configured target folders and syncs every note,
// sequentially. Missing folders are reported once without aborting the run;
// per-note failures are isolated, counted, and never stop remaining notes.
func (s *Syncer) SyncAll(ctx context.Context) (Tally, error) {
	var tally Tally

	var missing []string
	var notes []vault.NoteInfo
	for _, folder := range s.cfg.Folders {
		if !s.vault.FolderExists(folder) {
			missing = append(missing, folder)
			continue
		}
		infos, err := s.vault.List(folder)
		if err != nil {
			s.log.Warn("list failed",
				slog.String("folder", folder),
				slog.String("error", err.Error()))
			continue
		}
		notes = append(notes, infos...)
	}

	if len(missing) > 0 {
		s.notifier.Notify(fmt.Sprintf("Folders not found: %s", strings.Join(missing, ", ")))
	}
	if len(notes) == 0 {
		s.notifier.Notify("No notes found in the configured folders")
		return tally, nil
	}

	for _, n := range notes {
		select {
		case <-ctx.Done():
			return tally, ctx.Err()
		default:
		}
		tally.Add(s.syncOne(ctx, n.Path))
	}

	if s.rec != nil {
		if err := s.rec.RecordRun(tally.Synced, tally.Skipped, tally.Errors); err != nil {
			s.log.Warn("ledger: record run failed", slog.String("error", err.Error()))
		}
	}
	s.notifier.Notify(fmt.Sprintf("Sync complete: %d synced, %d skipped, %d errors",
		tally.Synced, tally.Skipped, tally.Errors))
	return tally, nil
}

// syncOne isolates one note's processing: a panic is contained and counted
// as an error so the batch keeps going.
func (s *Syncer) syncOne(ctx context.Context, path string) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("sync panicked",
				slog.String("path", path),
				slog.Any("panic", r))
			o = OutcomeError
		}
	}()
	o, _ = s.SyncNote(ctx, path, true)
	return o
}

func (s *Syncer) record(path string, o Outcome, cause error) {
	if s.rec == nil {
		return
	}
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	if err := s.rec.RecordOutcome(path, o.String(), detail); err != nil {
		s.log.Warn("ledger: record failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

func (s *Syncer) emit(kind, path string) {
	if s.cb != nil {
		s.cb(kind, path)
	}
}
