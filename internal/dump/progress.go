package dump

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dtnitsch/wikilinks/models"
	"github.com/dtnitsch/wikilinks/pkg/sink"
)

// progressSink logs a line every `every` pages and otherwise passes records through.
type progressSink struct {
	sink.Sink
	every int64
	pages int64
	links int64
	start time.Time
}

func newProgressSink(s sink.Sink, every int) *progressSink {
	return &progressSink{Sink: s, every: int64(every), start: time.Now()}
}

func (p *progressSink) WritePage(page models.Page) error {
	if err := p.Sink.WritePage(page); err != nil {
		return err
	}
	p.pages++
	if p.every > 0 && p.pages%p.every == 0 {
		log.Info().
			Int64("pages", p.pages).
			Int64("links", p.links).
			Str("title", page.Title).
			Dur("elapsed", time.Since(p.start)).
			Msg("progress")
	}
	return nil
}

func (p *progressSink) WriteLink(link models.Link) error {
	if err := p.Sink.WriteLink(link); err != nil {
		return err
	}
	p.links++
	return nil
}
