package db

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikilinks/internal/common"
	dbpkg "github.com/dtnitsch/wikilinks/pkg/db"
	"github.com/dtnitsch/wikilinks/pkg/storage"
)

// OpenExisting opens the database named by --db. Unlike dbpkg.Open it refuses
// to create a new file, since the query commands have nothing to show then.
func OpenExisting(c *cli.Context) (*dbpkg.DB, error) {
	path := c.String("db")
	if err := common.RequireFile(&storage.Storage{}, path, "database"); err != nil {
		return nil, err
	}
	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, common.FatalError("failed to open database", err)
	}
	return database, nil
}

// ResolvePage looks a page up by title, or by id when arg is numeric and no
// page carries that title.
func ResolvePage(arg string, database *dbpkg.DB) (*dbpkg.PageRecord, error) {
	page, err := database.GetPageByTitle(arg)
	if err != nil || page != nil {
		return page, err
	}

	// Titles may be numeric, so the id lookup comes second
	if id, convErr := strconv.ParseInt(arg, 10, 64); convErr == nil {
		return database.GetPageByID(id)
	}
	return nil, nil
}
