package sync

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// settleDelay debounces bursts of events for the same note.
	settleDelay = 500 * time.Millisecond
	// cooldown suppresses the events our own merge writes generate, so a
	// sync does not trigger itself.
	cooldown = 10 * time.Second
)

// Watch auto-syncs notes as they are created or modified under the
// configured target folders, until ctx is cancelled. New directories
// created at runtime are added to the watch list.
func Watch(ctx context.Context, s *Syncer, vaultRoot string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := 0
	for _, folder := range s.cfg.Folders {
		abs := filepath.Join(vaultRoot, folder)
		if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
			logger.Warn("watcher: folder missing", slog.String("folder", folder))
			continue
		}
		if err := addDirsRecursive(w, abs); err != nil {
			return err
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("sync: no existing target folders to watch")
	}

	logger.Info("watcher: started", slog.String("root", vaultRoot))

	pending := make(map[string]struct{})
	recent := make(map[string]time.Time)

	var settleTimer *time.Timer
	var settleCh <-chan time.Time
	schedule := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(settleDelay)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(settleDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			for rel := range pending {
				delete(pending, rel)
				if t, ok := recent[rel]; ok && time.Since(t) < cooldown {
					continue
				}
				if !s.vault.Exists(rel) {
					continue
				}
				if _, err := s.SyncNote(ctx, rel, true); err != nil {
					logger.Debug("watcher: sync failed", slog.String("path", rel))
				}
				recent[rel] = time.Now()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			rel, relErr := filepath.Rel(vaultRoot, ev.Name)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if t, ok := recent[rel]; ok && time.Since(t) < cooldown {
				continue
			}
			pending[rel] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
