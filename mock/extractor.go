package mock

import "github.com/fwojciec/linkcollect"

var _ linkcollect.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of linkcollect.LinkExtractor.
type LinkExtractor struct {
	ExtractHrefsFn func(html string) ([]string, error)
}

func (e *LinkExtractor) ExtractHrefs(html string) ([]string, error) {
	return e.ExtractHrefsFn(html)
}
