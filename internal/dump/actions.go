package dump

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikilinks/internal/common"
	"github.com/dtnitsch/wikilinks/models"
	dbpkg "github.com/dtnitsch/wikilinks/pkg/db"
	dumppkg "github.com/dtnitsch/wikilinks/pkg/dump"
	"github.com/dtnitsch/wikilinks/pkg/extractor"
	"github.com/dtnitsch/wikilinks/pkg/manifest"
	"github.com/dtnitsch/wikilinks/pkg/sink"
	"github.com/dtnitsch/wikilinks/pkg/storage"
)

// DumpAction converts one dump file into page and link records.
func DumpAction(c *cli.Context) error {
	cfg, err := BuildConfig(c)
	if err != nil {
		return err
	}
	common.SetLogLevel(cfg.Quiet, cfg.Verbose)

	s := &storage.Storage{}
	if cfg.Input != dumppkg.StdinPath {
		if err := common.RequireFile(s, cfg.Input, "dump file"); err != nil {
			return err
		}
	}

	format, _ := models.ParseOutputFormat(cfg.Format) // checked by BuildConfig

	log.Info().
		Str("input", cfg.Input).
		Str("format", format.String()).
		Str("output", outputName(cfg.Output)).
		Int("max_links", cfg.MaxLinks).
		Msg("dump started")

	result, runErr := Execute(cfg, format, s)

	if cfg.Summary != "" {
		if _, err := manifest.WriteSummary(cfg.Summary, result, s); err != nil {
			log.Warn().Err(err).Str("path", cfg.Summary).Msg("failed to write run summary")
		} else {
			log.Debug().Str("path", cfg.Summary).Msg("run summary written")
		}
	}

	if runErr != nil {
		return common.FatalError(fmt.Sprintf("dump failed after %d pages", result.Pages), runErr)
	}

	event := log.Info().
		Int64("pages", result.Pages).
		Int64("links", result.Links).
		Dur("duration", result.Duration)
	if result.RunID != 0 {
		event = event.Int64("run_id", result.RunID)
	}
	event.Msg("dump finished")
	return nil
}

// Execute runs one dump end to end. The returned result carries the counts
// reached so far even when err is set.
func Execute(cfg *models.DumpConfig, format models.OutputFormat, s *storage.Storage) (result manifest.RunResult, err error) {
	start := time.Now()
	result = manifest.RunResult{
		Input:  cfg.Input,
		Format: format.String(),
		Output: cfg.Output,
	}
	defer func() {
		result.Duration = time.Since(start)
		result.Err = err
	}()

	in, err := dumppkg.Open(cfg.Input)
	if err != nil {
		return result, err
	}
	defer in.Close()

	target := sink.Target{Input: cfg.Input}
	if format == models.OutputFormatSQLite {
		database, err := dbpkg.Open(cfg.Output)
		if err != nil {
			return result, fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()
		target.DB = database
	} else {
		w, createErr := s.CreateOutput(cfg.Output)
		if createErr != nil {
			return result, createErr
		}
		defer closeOutput(w, &err)
		target.Writer = w
	}

	out, err := sink.New(format, target)
	if err != nil {
		return result, err
	}

	acc := dumppkg.NewAccumulator(newProgressSink(out, cfg.ProgressEvery), extractor.NewStrategy(cfg))
	runErr := dumppkg.Run(dumppkg.NewDecoder(in), acc)
	result.Pages = acc.PageCount()
	result.Links = acc.LinkCount()

	if runErr != nil {
		if abortErr := out.Abort(runErr); abortErr != nil {
			log.Warn().Err(abortErr).Msg("failed to abort output")
		}
		return result, runErr
	}

	if err := out.Close(); err != nil {
		return result, err
	}
	if sq, ok := out.(*sink.SQLiteSink); ok {
		result.RunID = sq.RunID()
	}
	return result, nil
}

func closeOutput(out io.Closer, err *error) {
	if cerr := out.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output: %w", cerr)
	}
}

func outputName(path string) string {
	if path == "" || path == storage.StdoutPath {
		return "stdout"
	}
	return path
}
