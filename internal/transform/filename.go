package transform

import (
	"regexp"
	"strings"
)

const maxFilenameLen = 200

var (
	invalidCharRe   = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	dashRunRe       = regexp.MustCompile(`-+`)
)

// SanitizeFilename produces a filesystem-safe base name from an arbitrary
// title. The ": " substitution runs before the generic invalid-character
// replacement so subtitles render as " - " rather than a bare dash.
func SanitizeFilename(title string) string {
	s := strings.ReplaceAll(title, ": ", " - ")
	s = invalidCharRe.ReplaceAllString(s, "-")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	s = strings.TrimLeft(s, ".")
	s = strings.TrimRight(s, ".")
	s = dashRunRe.ReplaceAllString(s, "-")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxFilenameLen {
		s = string(r[:maxFilenameLen])
	}
	return s
}
