package dump

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dtnitsch/wikilinks/models"
	"github.com/dtnitsch/wikilinks/pkg/extractor"
)

const (
	titleField = "title"
	textField  = "text"
)

// State is the field the Accumulator is currently reading.
type State int

const (
	StateNone State = iota
	StateTitle
	StateBody
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "NONE"
	case StateTitle:
		return "IN_TITLE"
	case StateBody:
		return "IN_BODY"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RecordSink receives page and link records in emission order.
type RecordSink interface {
	WritePage(models.Page) error
	WriteLink(models.Link) error
}

// Accumulator assembles the title and body of one page at a time and emits
// records as fields close. It lives for exactly one run and must only be used
// from the goroutine driving it.
type Accumulator struct {
	sink     RecordSink
	strategy *extractor.Strategy

	state State
	title bytes.Buffer
	body  bytes.Buffer

	pageCount int64
	linkCount int64
}

// NewAccumulator returns an Accumulator writing to sink. A nil strategy means
// extractor.DefaultStrategy.
func NewAccumulator(sink RecordSink, strategy *extractor.Strategy) *Accumulator {
	if strategy == nil {
		strategy = extractor.DefaultStrategy()
	}
	return &Accumulator{sink: sink, strategy: strategy}
}

// Handle applies one event. An error from the sink is returned as is.
func (a *Accumulator) Handle(ev Event) error {
	switch ev.Kind {
	case FieldOpen:
		switch ev.Name {
		case titleField:
			a.state = StateTitle
		case textField:
			a.state = StateBody
		default:
			a.state = StateNone
		}

	case Characters:
		switch a.state {
		case StateTitle:
			a.title.Write(ev.Data)
		case StateBody:
			a.body.Write(ev.Data)
		}

	case FieldClose:
		switch ev.Name {
		case titleField:
			return a.closeTitle()
		case textField:
			return a.closeBody()
		default:
			a.state = StateNone
		}
	}
	return nil
}

func (a *Accumulator) closeTitle() error {
	a.pageCount++
	page := models.Page{
		ID:    a.pageCount,
		Title: strings.TrimSpace(a.title.String()),
	}
	a.title.Reset()

	return a.sink.WritePage(page)
}

func (a *Accumulator) closeBody() error {
	targets := a.strategy.Extract(a.body.String())
	a.body.Reset()

	for _, target := range targets {
		if err := a.sink.WriteLink(models.Link{PageID: a.pageCount, Target: target}); err != nil {
			return err
		}
		a.linkCount++
	}
	return nil
}

// State returns the field currently being read.
func (a *Accumulator) State() State { return a.state }

// PageCount returns the id of the last emitted page.
func (a *Accumulator) PageCount() int64 { return a.pageCount }

// LinkCount returns the number of link records emitted so far.
func (a *Accumulator) LinkCount() int64 { return a.linkCount }
