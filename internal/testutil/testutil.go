// Package testutil provides shared test helpers for setting up vaults and
// ledgers.
package testutil

import (
	"os"
	"testing"

	"github.com/perhult/reelsync/internal/ledger"
	"github.com/perhult/reelsync/internal/vault"
)

// TestVault creates a temporary vault directory with an FS provider.
func TestVault(t *testing.T) (string, *vault.FS) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := vault.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestLedger creates a temporary SQLite ledger that is cleaned up with the
// test.
func TestLedger(t *testing.T) *ledger.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "reelsync-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := ledger.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
