// Package imdb validates and extracts IMDb title identifiers from user input.
package imdb

import (
	"regexp"
	"strings"

	"github.com/perhult/reelsync/internal/apperr"
)

var (
	idRe  = regexp.MustCompile(`(?i)^tt\d{7,}$`)
	urlRe = regexp.MustCompile(`(?i)/title/(tt\d{7,})`)
)

// Parse extracts a canonical identifier from input, which may be a bare ID
// ("tt0468569") or an IMDb title URL. The result is lowercase-normalised.
// Returns apperr.ErrInvalidIdentifier when neither shape matches.
func Parse(input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	if m := urlRe.FindStringSubmatch(trimmed); m != nil {
		return strings.ToLower(m[1]), nil
	}
	if idRe.MatchString(trimmed) {
		return strings.ToLower(trimmed), nil
	}
	return "", apperr.ErrInvalidIdentifier
}
