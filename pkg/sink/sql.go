package sink

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/wikilinks/models"
)

const (
	pagesTable = "wikipedia_pages"
	linksTable = "wikipedia_links"
)

// sqlHeader creates both tables from scratch. Column sizes are the storage
// contract for titles and link targets.
var sqlHeader = []string{
	"SET NAMES utf8;",
	"DROP TABLE IF EXISTS " + pagesTable + ";",
	"CREATE TABLE `" + pagesTable + "` ( " +
		"`page_id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY , " +
		"`title` VARCHAR( 100 ) NOT NULL " +
		") ENGINE = MYISAM;",
	"DROP TABLE IF EXISTS " + linksTable + ";",
	"CREATE TABLE `" + linksTable + "` ( " +
		"`link_id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY , " +
		"`page_id` INT NOT NULL , " +
		"`link` VARCHAR( 100 ) NOT NULL " +
		") ENGINE = MYISAM;",
}

// sqlFooter indexes the tables once all rows are in.
var sqlFooter = []string{
	"ALTER TABLE `" + pagesTable + "` ADD INDEX ( `page_id` );",
	"ALTER TABLE `" + pagesTable + "` ADD INDEX ( `title` );",
	"ALTER TABLE `" + linksTable + "` ADD INDEX ( `page_id` );",
}

var sqlEscaper = strings.NewReplacer("'", "''", `\`, "")

// SQLSink writes a MySQL dump: schema, one INSERT per record, then indexes.
type SQLSink struct {
	w      *bufio.Writer
	closed bool
}

// NewSQL writes the schema header to w and returns the sink.
func NewSQL(w io.Writer) (*SQLSink, error) {
	s := &SQLSink{w: bufio.NewWriter(w)}
	if err := s.writeLines(sqlHeader); err != nil {
		return nil, err
	}
	return s, nil
}

// EscapeSQL quotes text for a single-quoted MySQL literal. Backslashes are
// dropped rather than escaped.
func EscapeSQL(s string) string {
	return sqlEscaper.Replace(s)
}

func (s *SQLSink) WritePage(p models.Page) error {
	_, err := fmt.Fprintf(s.w, "INSERT INTO %s VALUES (%d, '%s');\n", pagesTable, p.ID, EscapeSQL(p.Title))
	if err != nil {
		return fmt.Errorf("failed to write page %d: %w", p.ID, err)
	}
	return nil
}

func (s *SQLSink) WriteLink(l models.Link) error {
	_, err := fmt.Fprintf(s.w, "INSERT INTO %s (page_id, link) VALUES (%d, '%s');\n", linksTable, l.PageID, EscapeSQL(l.Target))
	if err != nil {
		return fmt.Errorf("failed to write link of page %d: %w", l.PageID, err)
	}
	return nil
}

func (s *SQLSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.writeLines(sqlFooter); err != nil {
		return err
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush sql output: %w", err)
	}
	return nil
}

// Abort drops whatever is still buffered and skips the index statements.
func (s *SQLSink) Abort(error) error {
	s.closed = true
	s.w.Reset(io.Discard)
	return nil
}

func (s *SQLSink) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := s.w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write sql output: %w", err)
		}
	}
	return nil
}
