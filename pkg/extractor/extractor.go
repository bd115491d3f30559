package extractor

import (
	"strings"

	"github.com/dtnitsch/wikilinks/models"
)

const (
	openMarker  = "[["
	closeMarker = "]]"
)

// Strategy controls which link targets survive extraction.
type Strategy struct {
	MaxLinks         int
	ReservedPrefixes []string
}

// DefaultStrategy keeps 15 links per page and drops image and category links.
func DefaultStrategy() *Strategy {
	return &Strategy{
		MaxLinks:         models.DefaultMaxLinks,
		ReservedPrefixes: append([]string(nil), models.DefaultReservedPrefixes...),
	}
}

// NewStrategy builds a strategy from the run configuration.
func NewStrategy(cfg *models.DumpConfig) *Strategy {
	s := DefaultStrategy()
	if cfg == nil {
		return s
	}
	if cfg.MaxLinks > 0 {
		s.MaxLinks = cfg.MaxLinks
	}
	if cfg.ReservedPrefixes != nil {
		s.ReservedPrefixes = append([]string(nil), cfg.ReservedPrefixes...)
	}
	return s
}

// ExtractLinks returns the link targets of a page body using DefaultStrategy.
func ExtractLinks(wikiText string) []string {
	return DefaultStrategy().Extract(wikiText)
}

// Extract scans wikiText for [[...]] spans and returns the cleaned targets in
// the order they first appear, at most MaxLinks of them.
//
// Spans do not nest: the first "]]" after an opener closes it, and scanning
// resumes right after that closer. Once MaxLinks targets are accepted the rest
// of the text is not examined.
func (s *Strategy) Extract(wikiText string) []string {
	var links []string
	if s.MaxLinks <= 0 {
		return links
	}

	pos := 0
	for {
		start := strings.Index(wikiText[pos:], openMarker)
		if start == -1 {
			break
		}
		start += pos + len(openMarker)

		end := strings.Index(wikiText[start:], closeMarker)
		if end == -1 {
			break
		}
		end += start
		pos = end + len(closeMarker)

		target, ok := s.cleanTarget(wikiText[start:end])
		if !ok {
			continue
		}
		links = append(links, target)
		if len(links) >= s.MaxLinks {
			break
		}
	}

	return links
}

// cleanTarget applies the filter chain to the inner text of one span.
func (s *Strategy) cleanTarget(linkText string) (string, bool) {
	// [[Target|shown text]]
	if i := strings.IndexByte(linkText, '|'); i != -1 {
		linkText = linkText[:i]
	}

	// years like [[1972]]
	if isDigits(linkText) {
		return "", false
	}

	for _, prefix := range s.ReservedPrefixes {
		if strings.HasPrefix(linkText, prefix) {
			return "", false
		}
	}

	// same-page anchor
	if strings.HasPrefix(linkText, "#") {
		return "", false
	}

	// Flugzeug#Flugsteuerung -> Flugzeug
	if i := strings.IndexByte(linkText, '#'); i != -1 {
		linkText = linkText[:i]
	}

	linkText = strings.ReplaceAll(linkText, "_", " ")

	// interlanguage links (en:...) and any other namespace
	if strings.Contains(linkText, ":") {
		return "", false
	}

	return linkText, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
