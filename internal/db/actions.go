package db

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikilinks/internal/common"
)

// StatsAction prints table sizes and the most recent runs.
func StatsAction(c *cli.Context) error {
	database, err := OpenExisting(c)
	if err != nil {
		return err
	}
	defer database.Close()

	pages, err := database.CountPages()
	if err != nil {
		return common.FatalError("failed to count pages", err)
	}
	links, err := database.CountLinks()
	if err != nil {
		return common.FatalError("failed to count links", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Database: %s\n", database.Path())
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Pages:    %d\n", pages)
	fmt.Fprintf(w, "Links:    %d\n", links)

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return common.FatalError("failed to list runs", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "\nNo runs recorded")
		return nil
	}

	fmt.Fprintf(w, "\n%-6s %-20s %-10s %-10s %-10s %s\n",
		"ID", "Created", "Pages", "Links", "Seconds", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-10d %-10d %-10.1f %s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.PageCount,
			r.LinkCount,
			float64(r.DurationMS)/1000,
			r.Input,
		)
	}

	return nil
}

// LinksAction prints the stored links of one page, given by title or id.
func LinksAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return common.UsageError("expected one page title or id. Usage: wikilinks links --db <file> <title>")
	}

	database, err := OpenExisting(c)
	if err != nil {
		return err
	}
	defer database.Close()

	arg := c.Args().First()
	page, err := ResolvePage(arg, database)
	if err != nil {
		return common.FatalError("failed to look up page", err)
	}
	if page == nil {
		return common.UsageError("no page %q in %s", arg, database.Path())
	}

	links, err := database.GetLinks(page.PageID)
	if err != nil {
		return common.FatalError("failed to get links", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Page %d: %s\n", page.PageID, page.Title)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, link := range links {
		fmt.Fprintf(w, "%2d. %s\n", i+1, link)
	}
	fmt.Fprintf(w, "\nTotal: %d links\n", len(links))

	return nil
}
