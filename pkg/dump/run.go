package dump

import (
	"io"

	"github.com/rs/zerolog/log"
)

// Run drives acc with events from src until the stream ends. The first error,
// from either side, stops the run and is returned; no event after it is read.
func Run(src EventSource, acc *Accumulator) error {
	for {
		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Debug().Err(err).Int64("pages", acc.PageCount()).Msg("dump stream aborted")
			return err
		}
		if err := acc.Handle(ev); err != nil {
			return err
		}
	}

	log.Debug().Int64("pages", acc.PageCount()).Int64("links", acc.LinkCount()).Msg("dump stream finished")
	return nil
}
