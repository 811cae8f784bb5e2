package linkcollect

import (
	"context"
	"strings"
)

// FetchResult holds a fetched page.
type FetchResult struct {
	// FinalURL is the URL of the response after following redirects.
	// Relative links in Body resolve against it.
	FinalURL string

	// Body is the response body decoded as text.
	Body string
}

// Fetcher retrieves a single page over the network.
type Fetcher interface {
	// Fetch issues one GET for the URL and returns the final URL and body.
	// Non-2xx responses are reported as EFETCH errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases idle connections.
	Close() error
}

// NormalizeURL prepends "http://" to a URL that carries no scheme separator.
func NormalizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return "http://" + raw
	}
	return raw
}
