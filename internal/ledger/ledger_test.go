package ledger

import (
	"os"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "reelsync-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndRecent(t *testing.T) {
	db := testDB(t)

	if err := db.RecordOutcome("Movies/Heat (1995).md", "synced", ""); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordOutcome("Movies/broken.md", "error", "omdb: Incorrect IMDb ID."); err != nil {
		t.Fatal(err)
	}

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Path != "Movies/broken.md" || entries[0].Outcome != "error" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[0].Detail == "" {
		t.Error("error detail missing")
	}
	if entries[1].Outcome != "synced" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestRuns(t *testing.T) {
	db := testDB(t)

	if err := db.RecordRun(3, 1, 2); err != nil {
		t.Fatal(err)
	}
	runs, err := db.Runs(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("len = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.Synced != 3 || r.Skipped != 1 || r.Errors != 2 {
		t.Errorf("run = %+v", r)
	}
}

func TestLastOutcome(t *testing.T) {
	db := testDB(t)

	if _, ok, _ := db.LastOutcome("nope.md"); ok {
		t.Error("expected no entry")
	}

	_ = db.RecordOutcome("n.md", "error", "first")
	_ = db.RecordOutcome("n.md", "synced", "")

	e, ok, err := db.LastOutcome("n.md")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || e.Outcome != "synced" {
		t.Errorf("last = %+v ok=%v", e, ok)
	}
}

func TestRecentLimitClamped(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 3; i++ {
		_ = db.RecordOutcome("n.md", "synced", "")
	}
	entries, err := db.Recent(-1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("len = %d", len(entries))
	}
}
