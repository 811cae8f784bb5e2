// Package html implements linkcollect.LinkExtractor with the x/net/html
// tokenizer. It never builds a tree, so it keeps working on input that a
// DOM-based parser gives up on.
package html

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/linkcollect"
	"golang.org/x/net/html"
)

// Ensure Extractor implements linkcollect.LinkExtractor at compile time.
var _ linkcollect.LinkExtractor = (*Extractor)(nil)

// Extractor scans a token stream for anchor start tags.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractHrefs returns the first href attribute of every <a> start tag in
// document order.
func (e *Extractor) ExtractHrefs(s string) ([]string, error) {
	z := html.NewTokenizer(strings.NewReader(s))
	hrefs := []string{}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, linkcollect.Errorf(linkcollect.EPARSE, "failed to tokenize HTML: %v", err)
			}
			return hrefs, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					hrefs = append(hrefs, string(val))
					break
				}
				if !more {
					break
				}
			}
		}
	}
}
