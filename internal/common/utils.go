package common

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikilinks/pkg/storage"
)

const (
	// ExitUsage is returned for bad arguments or configuration.
	ExitUsage = 1
	// ExitFatal is returned when the run itself fails.
	ExitFatal = 2
)

// SetupLogger sends human readable logs to w. Commands refine the level with
// SetLogLevel once their configuration is known.
func SetupLogger(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// SetLogLevel maps --quiet and --verbose to a global level. Quiet wins.
func SetLogLevel(quiet, verbose bool) {
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// UsageError reports bad invocation and exits with ExitUsage.
func UsageError(format string, args ...any) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf("Error: "+format, args...), ExitUsage)
}

// FatalError logs err and exits with ExitFatal.
func FatalError(msg string, err error) cli.ExitCoder {
	log.Error().Err(err).Msg(msg)
	return cli.Exit(fmt.Sprintf("Error: %s: %v", msg, err), ExitFatal)
}

// RequireFile fails with a usage error when path does not exist.
func RequireFile(s *storage.Storage, path, what string) error {
	if !s.HasFile(path) {
		return UsageError("%s %s does not exist", what, path)
	}
	return nil
}
