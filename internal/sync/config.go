package sync

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldMapping binds one OMDb field to a note frontmatter property.
type FieldMapping struct {
	Field    string `yaml:"field"`
	Property string `yaml:"property"`
	Enabled  bool   `yaml:"enabled"`
}

// TargetProperty returns the frontmatter property name, defaulting to the
// lowercased field name when left blank.
func (m FieldMapping) TargetProperty() string {
	if m.Property == "" {
		return strings.ToLower(m.Field)
	}
	return m.Property
}

// Config holds the sync rules: which folders to walk, which frontmatter
// property carries the identifier, and how OMDb fields map onto properties.
type Config struct {
	Folders            []string       `yaml:"folders"`
	IdentifierProperty string         `yaml:"identifier_property"`
	RenameOnSync       bool           `yaml:"rename_on_sync"`
	MovieFolder        string         `yaml:"movie_folder"`
	SeriesFolder       string         `yaml:"series_folder"`
	MovieTemplate      string         `yaml:"movie_template"`
	SeriesTemplate     string         `yaml:"series_template"`
	Mappings           []FieldMapping `yaml:"mappings"`
}

// Validate normalises and validates the sync configuration. Folder entries
// are trimmed and blank entries dropped; mapping fields must be unique.
func (c *Config) Validate() error {
	folders := c.Folders[:0]
	for _, f := range c.Folders {
		if f = strings.TrimSpace(f); f != "" {
			folders = append(folders, f)
		}
	}
	c.Folders = folders
	c.IdentifierProperty = strings.TrimSpace(c.IdentifierProperty)

	if err := validation.ValidateStruct(c,
		validation.Field(&c.IdentifierProperty, validation.Required),
		validation.Field(&c.MovieFolder, validation.Required),
		validation.Field(&c.SeriesFolder, validation.Required),
	); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Mappings))
	for _, m := range c.Mappings {
		if m.Field == "" {
			return fmt.Errorf("sync: mapping with empty field")
		}
		if _, dup := seen[m.Field]; dup {
			return fmt.Errorf("sync: duplicate mapping for field %q", m.Field)
		}
		seen[m.Field] = struct{}{}
	}
	return nil
}

// DefaultConfig returns the compiled-in sync configuration.
func DefaultConfig() Config {
	return Config{
		Folders:            []string{"Movies", "TV Shows"},
		IdentifierProperty: "imdbid",
		RenameOnSync:       false,
		MovieFolder:        "Movies",
		SeriesFolder:       "TV Shows",
		Mappings:           DefaultMappings(),
	}
}

// DefaultMappings is the compiled-in field mapping list.
func DefaultMappings() []FieldMapping {
	return []FieldMapping{
		{Field: "Title", Enabled: true},
		{Field: "Year", Enabled: true},
		{Field: "Type", Enabled: true},
		{Field: "Genre", Enabled: true},
		{Field: "Director", Enabled: true},
		{Field: "Writer", Enabled: false},
		{Field: "Actors", Enabled: true},
		{Field: "Plot", Enabled: true},
		{Field: "Runtime", Enabled: true},
		{Field: "Released", Enabled: true},
		{Field: "Poster", Enabled: true},
		{Field: "imdbRating", Property: "rating", Enabled: true},
		{Field: "Language", Enabled: false},
		{Field: "Country", Enabled: false},
		{Field: "Awards", Enabled: false},
		{Field: "Metascore", Enabled: false},
	}
}

// MergeDefaultMappings appends any compiled-in default mapping whose field
// is missing from the user's list. User entries keep their order, values,
// and toggles exactly; nothing is removed or overwritten.
func MergeDefaultMappings(user []FieldMapping) []FieldMapping {
	present := make(map[string]struct{}, len(user))
	for _, m := range user {
		present[m.Field] = struct{}{}
	}
	out := user
	for _, d := range DefaultMappings() {
		if _, ok := present[d.Field]; !ok {
			out = append(out, d)
		}
	}
	return out
}
