// Package transform maps raw OMDb field values to note-storable
// representations. All functions are pure and total: when a specialised rule
// does not apply or does not parse, the input is returned unchanged.
package transform

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// releasedLayout is the date format OMDb uses for Released and DVD fields.
const releasedLayout = "02 Jan 2006"

var leadingDigitsRe = regexp.MustCompile(`^\d+`)

// linkFields are the cast/crew/category fields whose comma-separated values
// become wikilink lists.
var linkFields = map[string]struct{}{
	"Actors":   {},
	"Director": {},
	"Writer":   {},
	"Genre":    {},
	"Country":  {},
	"Language": {},
}

// Value converts a raw field value into its note representation: a string,
// an int, or an ordered []string of wikilinks. Non-string values (e.g. the
// Ratings list) pass through unchanged.
func Value(field string, raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}

	if _, ok := linkFields[field]; ok {
		return wikilinks(s)
	}

	switch field {
	case "Runtime":
		if m := leadingDigitsRe.FindString(s); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n
			}
		}
		return s
	case "Year":
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return s
	case "Released", "DVD":
		if t, err := time.Parse(releasedLayout, s); err == nil {
			return t.Format("2006-01-02")
		}
		return s
	}
	return s
}

// wikilinks splits a comma-separated value into trimmed [[Name]] tokens.
// Order is preserved and duplicates are kept; only empty pieces are dropped.
func wikilinks(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, "[["+p+"]]")
	}
	return out
}
