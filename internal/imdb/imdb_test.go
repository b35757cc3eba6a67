package imdb

import (
	"errors"
	"testing"

	"github.com/perhult/reelsync/internal/apperr"
)

func TestParse_BareID(t *testing.T) {
	id, err := Parse("tt0468569")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "tt0468569" {
		t.Errorf("id = %q, want tt0468569", id)
	}
}

func TestParse_CaseNormalised(t *testing.T) {
	id, err := Parse("  TT0468569  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "tt0468569" {
		t.Errorf("id = %q, want tt0468569", id)
	}
}

func TestParse_LongID(t *testing.T) {
	id, err := Parse("tt12345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "tt12345678" {
		t.Errorf("id = %q", id)
	}
}

func TestParse_URL(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"https://www.imdb.com/title/tt3896198/", "tt3896198"},
		{"https://www.imdb.com/title/tt3896198/?ref_=fn_al_tt_1", "tt3896198"},
		{"https://m.imdb.com/Title/TT3896198/episodes", "tt3896198"},
		{"imdb.com/title/tt0111161", "tt0111161"},
	}
	for _, c := range cases {
		id, err := Parse(c.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", c.input, err)
			continue
		}
		if id != c.want {
			t.Errorf("Parse(%q) = %q, want %q", c.input, id, c.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"tt123",
		"tt123456",
		"0468569",
		"https://www.imdb.com/name/nm0000093/",
	}
	for _, c := range cases {
		if _, err := Parse(c); !errors.Is(err, apperr.ErrInvalidIdentifier) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidIdentifier", c, err)
		}
	}
}
