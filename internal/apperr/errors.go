package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrNoFrontmatter     = errors.New("no frontmatter")
	ErrInvalidIdentifier = errors.New("invalid imdb identifier")
	ErrMissingAPIKey     = errors.New("omdb api key not configured")
)
