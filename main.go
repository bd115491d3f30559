package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikilinks/internal/common"
	"github.com/dtnitsch/wikilinks/internal/db"
	"github.com/dtnitsch/wikilinks/internal/dump"
	"github.com/dtnitsch/wikilinks/models"
	dbpkg "github.com/dtnitsch/wikilinks/pkg/db"
	"github.com/dtnitsch/wikilinks/pkg/help"
)

func main() {
	common.SetupLogger(os.Stderr)

	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "wikilinks",
		Usage:     "Extract pages and internal links from a MediaWiki XML dump",
		UsageText: "wikilinks [options] <dump.xml|dump.xml.bz2|->\n" +
			"A dump file named like a command (stats, links, quickstart) must be passed as ./stats",
		Writer:    stdout,
		ErrWriter: stderr,
		// main decides the exit code
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: sql, ndjson or sqlite",
				Value: models.OutputFormatSQL.String(),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (stdout when omitted; required for sqlite)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file; flags override its values",
			},
			&cli.IntFlag{
				Name:  "max-links",
				Usage: "Links kept per page",
				Value: models.DefaultMaxLinks,
			},
			&cli.StringSliceFlag{
				Name:  "reserved-prefix",
				Usage: "Link prefix to skip (repeatable, replaces the defaults)",
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: "Write a YAML run summary to this path",
			},
			&cli.IntFlag{
				Name:  "progress",
				Usage: "Log progress every N pages",
				Value: models.DefaultProgressEvery,
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output",
			},
		},
		Action: dump.DumpAction,
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show table sizes and recent runs of a SQLite output",
				Flags:  []cli.Flag{dbFlag(), &cli.IntFlag{Name: "limit", Usage: "Runs to show", Value: 10}},
				Action: db.StatsAction,
			},
			{
				Name:      "links",
				Usage:     "Show the stored links of one page",
				ArgsUsage: "<title|id>",
				Flags:     []cli.Flag{dbFlag()},
				Action:    db.LinksAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML cheat sheet",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
		},
	}
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "SQLite database written by --format sqlite",
		Value: dbpkg.DefaultDBName,
	}
}

// exitCode maps an error from app.Run to the process exit status. Errors
// without a code come from flag parsing and count as usage errors.
func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return common.ExitUsage
}
