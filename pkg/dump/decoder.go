// Package dump turns a MediaWiki XML export into page and link records.
//
// The Decoder reads the export one XML token at a time and reports structural
// events; the Accumulator follows those events through a small state machine,
// collecting one page title and body at a time. Nothing beyond the current
// page is ever held in memory, so dumps of any size can be processed.
package dump

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrMalformed is matched by every error caused by input that is not well-formed XML.
var ErrMalformed = errors.New("malformed dump")

// DecodeError reports where in the input decoding failed.
type DecodeError struct {
	Line   int
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed dump at line %d (byte %d): %v", e.Line, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrMalformed }

// EventKind is the type of a structural event.
type EventKind int

const (
	FieldOpen EventKind = iota + 1
	Characters
	FieldClose
)

func (k EventKind) String() string {
	switch k {
	case FieldOpen:
		return "FieldOpen"
	case Characters:
		return "Characters"
	case FieldClose:
		return "FieldClose"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one structural event of the document. Name is set for FieldOpen and
// FieldClose, Data for Characters.
type Event struct {
	Kind EventKind
	Name string
	Data []byte
}

// EventSource yields events in document order and io.EOF after the last one.
type EventSource interface {
	Next() (Event, error)
}

// Decoder is a streaming EventSource over an XML document.
type Decoder struct {
	xmlDecoder *xml.Decoder
	depth      int
	sawRoot    bool
}

// NewDecoder prepares a strict streaming read of r. Documents declaring a
// non-UTF-8 encoding are transcoded on the fly.
func NewDecoder(r io.Reader) *Decoder {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	return &Decoder{xmlDecoder: decoder}
}

// Next returns the next structural event. Comments, processing instructions
// and directives are skipped. Any violation of well-formedness, including text
// or elements outside the root element, is returned as a *DecodeError.
func (d *Decoder) Next() (Event, error) {
	for {
		t, err := d.xmlDecoder.Token()
		if err == io.EOF {
			if !d.sawRoot {
				return Event{}, d.fail(errors.New("no root element"))
			}
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, d.fail(err)
		}

		switch se := t.(type) {
		case xml.StartElement:
			if d.depth == 0 && d.sawRoot {
				return Event{}, d.fail(fmt.Errorf("element <%s> after the root element", se.Name.Local))
			}
			if name, ok := duplicateAttr(se.Attr); ok {
				return Event{}, d.fail(fmt.Errorf("attribute %s repeated on <%s>", name, se.Name.Local))
			}
			d.sawRoot = true
			d.depth++
			return Event{Kind: FieldOpen, Name: se.Name.Local}, nil

		case xml.EndElement:
			d.depth--
			return Event{Kind: FieldClose, Name: se.Name.Local}, nil

		case xml.CharData:
			if d.depth == 0 {
				if len(bytes.TrimSpace(se)) != 0 {
					return Event{}, d.fail(errors.New("text outside the root element"))
				}
				continue
			}
			// the decoder reuses its buffer on the next Token call
			return Event{Kind: Characters, Data: bytes.Clone(se)}, nil
		}
	}
}

func (d *Decoder) fail(err error) error {
	line, _ := d.xmlDecoder.InputPos()
	return &DecodeError{
		Line:   line,
		Offset: d.xmlDecoder.InputOffset(),
		Err:    err,
	}
}

// duplicateAttr reports the first attribute name that occurs twice. The xml
// package accepts repeated attributes even in strict mode.
func duplicateAttr(attrs []xml.Attr) (string, bool) {
	for i := 1; i < len(attrs); i++ {
		for j := 0; j < i; j++ {
			if attrs[i].Name == attrs[j].Name {
				name := attrs[i].Name.Local
				if attrs[i].Name.Space != "" {
					name = attrs[i].Name.Space + ":" + name
				}
				return name, true
			}
		}
	}
	return "", false
}
