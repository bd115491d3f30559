package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dtnitsch/wikilinks/models"
)

type pageLine struct {
	Type string `json:"type"`
	models.Page
}

type linkLine struct {
	Type string `json:"type"`
	models.Link
}

// NDJSONSink writes one JSON object per record:
//
//	{"type":"page","id":1,"title":"Flugzeug"}
//	{"type":"link","page_id":1,"target":"Luftfahrzeug"}
type NDJSONSink struct {
	w      *bufio.Writer
	enc    *json.Encoder
	closed bool
}

func NewNDJSON(w io.Writer) *NDJSONSink {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &NDJSONSink{w: bw, enc: enc}
}

func (s *NDJSONSink) WritePage(p models.Page) error {
	if err := s.enc.Encode(pageLine{Type: "page", Page: p}); err != nil {
		return fmt.Errorf("failed to write page %d: %w", p.ID, err)
	}
	return nil
}

func (s *NDJSONSink) WriteLink(l models.Link) error {
	if err := s.enc.Encode(linkLine{Type: "link", Link: l}); err != nil {
		return fmt.Errorf("failed to write link of page %d: %w", l.PageID, err)
	}
	return nil
}

func (s *NDJSONSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush ndjson output: %w", err)
	}
	return nil
}

// Abort drops whatever is still buffered.
func (s *NDJSONSink) Abort(error) error {
	s.closed = true
	s.w.Reset(io.Discard)
	return nil
}
