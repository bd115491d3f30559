// Package sink renders page and link records for the target store.
//
// Every Sink receives records in emission order: a page, then the links of
// that page, then the next page. Escaping and serialization happen here; the
// records themselves arrive exactly as the dump produced them.
package sink

import (
	"fmt"
	"io"

	"github.com/dtnitsch/wikilinks/models"
	"github.com/dtnitsch/wikilinks/pkg/db"
)

// Sink is a record renderer that owns its output.
type Sink interface {
	WritePage(models.Page) error
	WriteLink(models.Link) error

	// Close finishes a successful run.
	Close() error
	// Abort finishes a failed run. Output already handed to the medium cannot
	// be recalled, but nothing further is written and transactional sinks roll back.
	Abort(cause error) error
}

// Target describes where rendered records go.
type Target struct {
	// Writer receives text formats.
	Writer io.Writer
	// DB receives the sqlite format.
	DB *db.DB
	// Input is recorded with sqlite runs.
	Input string
}

// New returns the sink for format.
func New(format models.OutputFormat, target Target) (Sink, error) {
	switch format {
	case models.OutputFormatSQL:
		if target.Writer == nil {
			return nil, fmt.Errorf("sql output needs a writer")
		}
		s, err := NewSQL(target.Writer)
		if err != nil {
			return nil, err
		}
		return s, nil
	case models.OutputFormatNDJSON:
		if target.Writer == nil {
			return nil, fmt.Errorf("ndjson output needs a writer")
		}
		return NewNDJSON(target.Writer), nil
	case models.OutputFormatSQLite:
		if target.DB == nil {
			return nil, fmt.Errorf("sqlite output needs a database")
		}
		s, err := NewSQLite(target.DB, target.Input)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported output format %v", format)
	}
}
