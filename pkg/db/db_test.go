package db

import (
	"path/filepath"
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

// loadPages writes pages and their links through a committed Loader.
func loadPages(t *testing.T, db *DB, pages map[int64]string, links map[int64][]string) {
	t.Helper()

	loader, err := db.BeginLoad()
	if err != nil {
		t.Fatalf("BeginLoad() error = %v", err)
	}

	var pageCount, linkCount int64
	for id := int64(1); id <= int64(len(pages)); id++ {
		if err := loader.InsertPage(id, pages[id]); err != nil {
			t.Fatalf("InsertPage() error = %v", err)
		}
		pageCount++
		for _, link := range links[id] {
			if err := loader.InsertLink(id, link); err != nil {
				t.Fatalf("InsertLink() error = %v", err)
			}
			linkCount++
		}
	}

	if _, err := loader.Commit("test.xml", pageCount, linkCount); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
	loadPages(t, database, map[int64]string{1: "Flugzeug"}, map[int64][]string{1: {"Luftfahrzeug"}})
	if err := database.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening must keep the schema and data
	database, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer database.Close()

	n, err := database.CountPages()
	if err != nil {
		t.Fatalf("CountPages() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountPages() = %d, want 1", n)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		t.Fatalf("second InitSchema() error = %v", err)
	}
}
