package frontmatter

import (
	"strings"
	"testing"
)

func TestSplit_BlockAndBody(t *testing.T) {
	input := []byte("---\ntitle: Heat\nyear: 1995\n---\n# Heat\nBody text.\n")
	m, body, ok := Split(input)
	if !ok {
		t.Fatal("expected frontmatter")
	}
	if got, _ := m.GetString("title"); got != "Heat" {
		t.Errorf("title = %q", got)
	}
	if got, _ := m.GetString("year"); got != "1995" {
		t.Errorf("year = %q", got)
	}
	if body != "# Heat\nBody text.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSplit_NoBlock(t *testing.T) {
	input := []byte("# Just a heading\n")
	_, body, ok := Split(input)
	if ok {
		t.Fatal("expected no frontmatter")
	}
	if body != "# Just a heading\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSplit_InvalidYAMLFallsBackToBody(t *testing.T) {
	input := []byte("---\n: bad: yaml: {{{\n---\nBody\n")
	_, body, ok := Split(input)
	if ok {
		t.Fatal("expected fallback on invalid YAML")
	}
	if body != string(input) {
		t.Errorf("body = %q", body)
	}
}

func TestSplit_Unterminated(t *testing.T) {
	input := []byte("---\ntitle: Dangling\n")
	_, _, ok := Split(input)
	if ok {
		t.Fatal("expected no frontmatter for unterminated block")
	}
}

func TestSetPreservesOrderAndOverwrites(t *testing.T) {
	input := []byte("---\nalpha: 1\nbeta: 2\ngamma: 3\n---\nBody\n")
	m, body, ok := Split(input)
	if !ok {
		t.Fatal("expected frontmatter")
	}

	if err := m.Set("beta", "two"); err != nil {
		t.Fatal(err)
	}
	if err := m.Set("delta", 4); err != nil {
		t.Fatal(err)
	}

	keys := m.Keys()
	want := []string{"alpha", "beta", "gamma", "delta"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	out, err := Render(m, body)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "beta: two") {
		t.Errorf("overwrite missing: %s", s)
	}
	if !strings.Contains(s, "delta: 4") {
		t.Errorf("append missing: %s", s)
	}
	if !strings.HasSuffix(s, "\nBody\n") {
		t.Errorf("body disturbed: %q", s)
	}
}

func TestSetListValue(t *testing.T) {
	m := NewMapping()
	if err := m.Set("actors", []string{"[[Al Pacino]]", "[[Robert De Niro]]"}); err != nil {
		t.Fatal(err)
	}
	out, err := Render(m, "")
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "- '[[Al Pacino]]'") && !strings.Contains(s, "- \"[[Al Pacino]]\"") {
		t.Errorf("list entry missing or unquoted: %s", s)
	}
}

func TestRenderRoundTripStable(t *testing.T) {
	input := []byte("---\ntitle: Heat\n---\n\nBody\n")
	m, body, ok := Split(input)
	if !ok {
		t.Fatal("expected frontmatter")
	}
	once, err := Render(m, body)
	if err != nil {
		t.Fatal(err)
	}
	m2, body2, ok := Split(once)
	if !ok {
		t.Fatal("round trip lost frontmatter")
	}
	twice, err := Render(m2, body2)
	if err != nil {
		t.Fatal(err)
	}
	if string(once) != string(twice) {
		t.Errorf("render not stable:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestSeedIdentifier_NoBlock(t *testing.T) {
	out := SeedIdentifier([]byte("# Note\n"), "imdbid", "tt0113277")
	s := string(out)
	if !strings.HasPrefix(s, "---\nimdbid: tt0113277\n---\n") {
		t.Errorf("got %q", s)
	}
	if !strings.Contains(s, "# Note\n") {
		t.Errorf("body lost: %q", s)
	}
}

func TestSeedIdentifier_EmptyContent(t *testing.T) {
	out := SeedIdentifier(nil, "imdbid", "tt0113277")
	if string(out) != "---\nimdbid: tt0113277\n---\n" {
		t.Errorf("got %q", out)
	}
}

func TestSeedIdentifier_InsertFirst(t *testing.T) {
	in := []byte("---\ntitle: Heat\n---\nBody\n")
	out := SeedIdentifier(in, "imdbid", "tt0113277")
	s := string(out)
	if !strings.HasPrefix(s, "---\nimdbid: tt0113277\ntitle: Heat\n---\n") {
		t.Errorf("got %q", s)
	}
}

func TestSeedIdentifier_Overwrite(t *testing.T) {
	in := []byte("---\ntitle: Heat\nimdbid: tt0000001\n---\nBody\n")
	out := SeedIdentifier(in, "imdbid", "tt0113277")
	s := string(out)
	if !strings.Contains(s, "imdbid: tt0113277") {
		t.Errorf("got %q", s)
	}
	if strings.Contains(s, "tt0000001") {
		t.Errorf("old value survived: %q", s)
	}
	// Still exactly one identifier line.
	if strings.Count(s, "imdbid:") != 1 {
		t.Errorf("duplicate identifier lines: %q", s)
	}
}
