package dump

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikilinks/internal/common"
	"github.com/dtnitsch/wikilinks/models"
)

// BuildConfig merges the optional --config file with the command line.
// Flags that were set explicitly win over the file.
func BuildConfig(c *cli.Context) (*models.DumpConfig, error) {
	if c.NArg() > 1 {
		return nil, common.UsageError("expected exactly one dump file, got %d arguments", c.NArg())
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, common.UsageError("%v", err)
	}

	if c.NArg() == 1 {
		cfg.Input = c.Args().First()
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("max-links") {
		cfg.MaxLinks = c.Int("max-links")
	}
	if c.IsSet("reserved-prefix") {
		cfg.ReservedPrefixes = c.StringSlice("reserved-prefix")
	}
	if c.IsSet("progress") {
		cfg.ProgressEvery = c.Int("progress")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}

	if cfg.Input == "" {
		return nil, common.UsageError("no dump file given. Usage: wikilinks [options] <dump.xml>")
	}
	if c.IsSet("max-links") && cfg.MaxLinks <= 0 {
		return nil, common.UsageError("--max-links must be positive, got %d", cfg.MaxLinks)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, common.UsageError("%v", err)
	}
	return cfg, nil
}
