package models

import (
	"fmt"
	"strings"
)

// OutputFormat selects how page and link records are rendered.
type OutputFormat int

const (
	// OutputFormatSQL renders a MySQL dump with schema and INSERT statements.
	OutputFormatSQL OutputFormat = iota
	// OutputFormatNDJSON writes one JSON object per record.
	OutputFormatNDJSON
	// OutputFormatSQLite loads rows into a SQLite database file.
	OutputFormatSQLite
)

func (f OutputFormat) String() string {
	switch f {
	case OutputFormatSQL:
		return "sql"
	case OutputFormatNDJSON:
		return "ndjson"
	case OutputFormatSQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

// ParseOutputFormat resolves a format name as given on the command line or in a config file.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sql", "mysql":
		return OutputFormatSQL, nil
	case "ndjson", "jsonl":
		return OutputFormatNDJSON, nil
	case "sqlite", "sqlite3", "db":
		return OutputFormatSQLite, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want sql, ndjson or sqlite)", name)
	}
}
