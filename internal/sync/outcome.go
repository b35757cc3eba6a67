package sync

// Outcome is the result of one note's sync attempt. Skipped is not a
// failure: it marks notes without frontmatter or without an identifier.
type Outcome int

const (
	OutcomeSynced Outcome = iota
	OutcomeSkipped
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSynced:
		return "synced"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Tally counts outcomes over a batch run.
type Tally struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Add records one outcome.
func (t *Tally) Add(o Outcome) {
	switch o {
	case OutcomeSynced:
		t.Synced++
	case OutcomeSkipped:
		t.Skipped++
	case OutcomeError:
		t.Errors++
	}
}

// Total returns the number of notes processed.
func (t Tally) Total() int {
	return t.Synced + t.Skipped + t.Errors
}
