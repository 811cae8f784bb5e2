package linkcollect

// LinkExtractor pulls raw anchor hrefs out of HTML.
type LinkExtractor interface {
	// ExtractHrefs parses HTML and returns the href value of every anchor
	// that has one, in document order. Empty values and duplicates are
	// kept; anchors without an href attribute are skipped.
	// Malformed markup is tolerated.
	ExtractHrefs(html string) ([]string, error)
}
