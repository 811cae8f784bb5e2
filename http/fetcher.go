// Package http provides an HTTP-based implementation of linkcollect.Fetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/linkcollect"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies requests as a desktop browser. Many servers
// reject the default agents of HTTP libraries.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// Ensure Fetcher implements linkcollect.Fetcher at compile time.
var _ linkcollect.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves a page with a single GET request.
// Redirects are followed; there are no retries.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. A URL without "://" is fetched over http.
// The body is decoded to UTF-8 using the declared or sniffed charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*linkcollect.FetchResult, error) {
	target := linkcollect.NormalizeURL(url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, linkcollect.Errorf(linkcollect.EFETCH, "invalid URL %q: %v", target, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, linkcollect.Errorf(linkcollect.EFETCH, "%v", err)
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL.String()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, linkcollect.Errorf(linkcollect.EFETCH, "HTTP %d %s for %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), finalURL)
	}

	// NewReader reads ahead; only an empty body falls back to the raw stream.
	var body io.Reader = resp.Body
	if r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		body = r
	} else if !errors.Is(err, io.EOF) {
		return nil, linkcollect.Errorf(linkcollect.EFETCH, "reading body of %s: %v", finalURL, err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, linkcollect.Errorf(linkcollect.EFETCH, "reading body of %s: %v", finalURL, err)
	}

	return &linkcollect.FetchResult{
		FinalURL: finalURL,
		Body:     string(data),
	}, nil
}

// Close releases idle keep-alive connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
