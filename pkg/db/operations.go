package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Loader writes one dump run inside a single transaction. Nothing is visible
// to readers until Commit; Rollback leaves the previous contents untouched.
type Loader struct {
	tx       *sql.Tx
	pageStmt *sql.Stmt
	linkStmt *sql.Stmt
	started  time.Time
}

// BeginLoad starts a transaction that replaces all pages and links.
func (db *DB) BeginLoad() (*Loader, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin load: %w", err)
	}

	for _, stmt := range []string{
		"DELETE FROM wikipedia_links",
		"DELETE FROM wikipedia_pages",
		"DELETE FROM sqlite_sequence WHERE name = 'wikipedia_links'",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback() // Rollback error less important than clear error
			return nil, fmt.Errorf("failed to clear previous load: %w", err)
		}
	}

	pageStmt, err := tx.Prepare("INSERT INTO wikipedia_pages (page_id, title) VALUES (?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	linkStmt, err := tx.Prepare("INSERT INTO wikipedia_links (page_id, link) VALUES (?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to prepare link insert: %w", err)
	}

	return &Loader{
		tx:       tx,
		pageStmt: pageStmt,
		linkStmt: linkStmt,
		started:  time.Now(),
	}, nil
}

// InsertPage inserts a page row.
func (l *Loader) InsertPage(pageID int64, title string) error {
	if _, err := l.pageStmt.Exec(pageID, title); err != nil {
		return fmt.Errorf("failed to insert page %d: %w", pageID, err)
	}
	return nil
}

// InsertLink inserts a link row for pageID.
func (l *Loader) InsertLink(pageID int64, link string) error {
	if _, err := l.linkStmt.Exec(pageID, link); err != nil {
		return fmt.Errorf("failed to insert link for page %d: %w", pageID, err)
	}
	return nil
}

// Commit records the run and makes the load visible, returning the run_id.
func (l *Loader) Commit(input string, pageCount, linkCount int64) (int64, error) {
	result, err := l.tx.Exec(`
		INSERT INTO runs (input, page_count, link_count, duration_ms)
		VALUES (?, ?, ?, ?)
	`, input, pageCount, linkCount, time.Since(l.started).Milliseconds())
	if err != nil {
		_ = l.Rollback()
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		_ = l.Rollback()
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	l.closeStmts()
	if err := l.tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit load: %w", err)
	}
	return runID, nil
}

// Rollback discards everything written through the loader.
func (l *Loader) Rollback() error {
	l.closeStmts()
	if err := l.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back load: %w", err)
	}
	return nil
}

func (l *Loader) closeStmts() {
	_ = l.pageStmt.Close()
	_ = l.linkStmt.Close()
}

// PageRecord is a stored page.
type PageRecord struct {
	PageID int64
	Title  string
}

// GetPageByTitle returns the first page with the given title, or nil if there is none.
func (db *DB) GetPageByTitle(title string) (*PageRecord, error) {
	var p PageRecord
	err := db.QueryRow(`
		SELECT page_id, title
		FROM wikipedia_pages
		WHERE title = ?
		ORDER BY page_id
		LIMIT 1
	`, title).Scan(&p.PageID, &p.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &p, nil
}

// GetLinks returns the link targets of a page in body order.
func (db *DB) GetLinks(pageID int64) ([]string, error) {
	rows, err := db.Query(`
		SELECT link
		FROM wikipedia_links
		WHERE page_id = ?
		ORDER BY link_id
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// CountPages returns the number of stored pages.
func (db *DB) CountPages() (int64, error) {
	var n int64
	if err := db.QueryRow("SELECT COUNT(*) FROM wikipedia_pages").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}

// CountLinks returns the number of stored links.
func (db *DB) CountLinks() (int64, error) {
	var n int64
	if err := db.QueryRow("SELECT COUNT(*) FROM wikipedia_links").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return n, nil
}

// GetPageByID returns the page with the given id, or nil if there is none.
func (db *DB) GetPageByID(pageID int64) (*PageRecord, error) {
	var p PageRecord
	err := db.QueryRow(`
		SELECT page_id, title
		FROM wikipedia_pages
		WHERE page_id = ?
	`, pageID).Scan(&p.PageID, &p.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &p, nil
}
