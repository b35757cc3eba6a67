package sync

import (
	"context"
	"fmt"
	"log/slog"
	gopath "path"

	"github.com/perhult/reelsync/internal/apperr"
	"github.com/perhult/reelsync/internal/frontmatter"
	"github.com/perhult/reelsync/internal/imdb"
	"github.com/perhult/reelsync/internal/transform"
)

// CreateNote builds a new note from a raw identifier or IMDb URL: fetch the
// record, pick the destination folder by type, apply the configured
// template, seed the identifier property into the raw content, create the
// note, and populate it from the already-fetched record. Returns the
// created note's path.
//
// Partial progress (a created folder, a created-but-unpopulated note) is
// not rolled back on later failure.
func (s *Syncer) CreateNote(ctx context.Context, input string) (string, error) {
	id, err := imdb.Parse(input)
	if err != nil {
		return "", err
	}
	if !s.client.HasKey() {
		return "", apperr.ErrMissingAPIKey
	}

	rec, err := s.client.Lookup(ctx, id)
	if err != nil {
		return "", err
	}
	if rec.Failed() {
		return "", fmt.Errorf("omdb: %s: %s", id, rec.Error)
	}

	folder, tmpl := s.cfg.SeriesFolder, s.cfg.SeriesTemplate
	if rec.IsMovie() {
		folder, tmpl = s.cfg.MovieFolder, s.cfg.MovieTemplate
	}
	if !s.vault.FolderExists(folder) {
		if err := s.vault.CreateFolder(folder); err != nil {
			return "", err
		}
	}

	name := transform.SanitizeFilename(desiredBaseName(rec))
	if name == "" {
		name = id
	}
	notePath := gopath.Join(folder, name+".md")
	if s.vault.Exists(notePath) {
		return "", fmt.Errorf("create %s: %w", notePath, apperr.ErrAlreadyExists)
	}

	var content []byte
	if tmpl != "" {
		data, err := s.vault.Read(tmpl)
		if err != nil {
			// Missing template is a warning, not a failure.
			s.log.Warn("template not found",
				slog.String("template", tmpl),
				slog.String("error", err.Error()))
			s.notifier.Notify(fmt.Sprintf("Template %s not found, creating an empty note", tmpl))
		} else {
			content = data
		}
	}

	seeded := frontmatter.SeedIdentifier(content, s.cfg.IdentifierProperty, id)
	if err := s.vault.Write(notePath, seeded); err != nil {
		return "", err
	}

	// Populate from the record already in hand; no second fetch.
	if err := s.applyRecord(notePath, rec); err != nil {
		return notePath, fmt.Errorf("created %s but populate failed: %w", notePath, err)
	}

	s.record(notePath, OutcomeSynced, nil)
	s.emit("created", notePath)
	s.notifier.Notify(fmt.Sprintf("Created %s", notePath))
	return notePath, nil
}
