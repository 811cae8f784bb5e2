// Package goquery implements linkcollect.LinkExtractor on top of goquery's
// forgiving HTML5 parser.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkcollect"
)

// Ensure Extractor implements linkcollect.LinkExtractor at compile time.
var _ linkcollect.LinkExtractor = (*Extractor)(nil)

// Extractor extracts anchor hrefs by building a DOM with goquery.
type Extractor struct {
	fallback linkcollect.LinkExtractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback sets an extractor used when goquery cannot build a document.
func WithFallback(fallback linkcollect.LinkExtractor) Option {
	return func(e *Extractor) {
		e.fallback = fallback
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractHrefs returns the href of every a[href] element in document order.
func (e *Extractor) ExtractHrefs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		if e.fallback != nil {
			return e.fallback.ExtractHrefs(html)
		}
		return nil, linkcollect.Errorf(linkcollect.EPARSE, "failed to parse HTML: %v", err)
	}

	sel := doc.Find("a[href]")
	hrefs := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})

	return hrefs, nil
}
