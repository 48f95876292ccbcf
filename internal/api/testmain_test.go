package api

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/vehicle.tracker/internal/db"
)

// seedDB carries the migrated schema. Tests get their own copy of it.
var seedDB *db.DB

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tracker-api-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, "api tests:", err)
		os.Exit(1)
	}
	seedDB, err = db.NewDB(filepath.Join(dir, "seed.db"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "api tests: migrate seed database:", err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()

	seedDB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

// freshDBPath snapshots the seed into the test's temp dir and returns the
// snapshot's path.
func freshDBPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.db")
	if _, err := seedDB.Exec(`VACUUM INTO ?`, path); err != nil {
		t.Fatalf("snapshot seed database: %v", err)
	}
	return path
}
