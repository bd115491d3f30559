package sink

import (
	"fmt"

	"github.com/dtnitsch/wikilinks/models"
	"github.com/dtnitsch/wikilinks/pkg/db"
)

// SQLiteSink loads records into a SQLite database in one transaction, so a
// failed run leaves the previous contents in place.
type SQLiteSink struct {
	loader *db.Loader
	input  string

	pages int64
	links int64
	runID int64
	done  bool
}

// NewSQLite starts a load into database. input is stored with the run.
func NewSQLite(database *db.DB, input string) (*SQLiteSink, error) {
	loader, err := database.BeginLoad()
	if err != nil {
		return nil, err
	}
	return &SQLiteSink{loader: loader, input: input}, nil
}

func (s *SQLiteSink) WritePage(p models.Page) error {
	if err := s.loader.InsertPage(p.ID, p.Title); err != nil {
		return err
	}
	s.pages++
	return nil
}

func (s *SQLiteSink) WriteLink(l models.Link) error {
	if err := s.loader.InsertLink(l.PageID, l.Target); err != nil {
		return err
	}
	s.links++
	return nil
}

func (s *SQLiteSink) Close() error {
	if s.done {
		return nil
	}
	s.done = true

	runID, err := s.loader.Commit(s.input, s.pages, s.links)
	if err != nil {
		return fmt.Errorf("failed to finish sqlite load: %w", err)
	}
	s.runID = runID
	return nil
}

func (s *SQLiteSink) Abort(error) error {
	if s.done {
		return nil
	}
	s.done = true
	return s.loader.Rollback()
}

// RunID returns the id of the committed run, or 0 before Close.
func (s *SQLiteSink) RunID() int64 { return s.runID }
