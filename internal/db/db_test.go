package db

import (
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// setupTestDB opens an in-memory database with a deterministic clock that
// advances one millisecond per call.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	base := time.UnixMilli(1_700_000_000_000)
	var tick int64
	d.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	})
	return d
}

func mustInsert(t *testing.T, d *DB, actor string, np NewPage) *Page {
	t.Helper()
	p, err := d.InsertPage(actor, np)
	if err != nil {
		t.Fatalf("InsertPage(%q): %v", np.Title, err)
	}
	return p
}

func strPtr(s string) *string { return &s }

// sameIDs reports whether got and want hold the same ids in any order.
func sameIDs(got, want []string) bool {
	a, b := slices.Clone(got), slices.Clone(want)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func TestOpenDB_CreatesFileAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wikitree.db")

	d, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	mustInsert(t, d, "alice", NewPage{Title: "Home"})
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening runs the migrations again without touching existing rows.
	d, err = OpenDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()

	pages, err := d.AllPages()
	if err != nil {
		t.Fatalf("AllPages: %v", err)
	}
	if len(pages) != 1 || pages[0].Title != "Home" {
		t.Fatalf("expected the Home page to survive, got %+v", pages)
	}
	if d.Path != path {
		t.Errorf("Path = %q, want %q", d.Path, path)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	d := setupTestDB(t)
	var on int
	if err := d.Conn().QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if on != 1 {
		t.Errorf("foreign_keys = %d, want 1", on)
	}
}

func TestIsRejected(t *testing.T) {
	d := setupTestDB(t)

	_, err := d.InsertPage("alice", NewPage{Title: "  "})
	if !IsRejected(err) {
		t.Errorf("blank title should be rejected, got %v", err)
	}
	if err := d.DeletePage("alice", "missing"); !IsRejected(err) {
		t.Errorf("missing page should be rejected, got %v", err)
	}
	if IsRejected(nil) {
		t.Error("nil error should not be rejected")
	}
}
