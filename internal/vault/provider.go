// Package vault defines the note-vault file-system abstraction.
package vault

import (
	"time"

	"github.com/perhult/reelsync/internal/frontmatter"
)

// NoteInfo is lightweight metadata for one vault note.
type NoteInfo struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for vault file operations. All paths are
// relative to the vault root.
type Provider interface {
	// List returns metadata for every .md file under dir, recursively.
	List(dir string) ([]NoteInfo, error)
	// Read returns the raw bytes of the note at path. A missing file
	// returns apperr.ErrNotFound.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent folders.
	Write(path string, content []byte) error
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// FolderExists reports whether dir exists and is a directory.
	FolderExists(dir string) bool
	// CreateFolder creates dir (and parents) if absent.
	CreateFolder(dir string) error
	// Rename moves a note to newPath. It refuses to clobber an existing
	// file at the destination.
	Rename(oldPath, newPath string) error
	// UpdateFrontmatter applies mutate to the note's frontmatter block in a
	// scoped read-modify-write: the block is parsed, mutated in memory, and
	// the whole note is re-serialised and written atomically. Notes without
	// a valid block return apperr.ErrNoFrontmatter untouched.
	UpdateFrontmatter(path string, mutate func(*frontmatter.Mapping) error) error
}
