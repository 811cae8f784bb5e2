// Package slog provides log/slog decorators for linkcollect services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkcollect"
)

// Ensure LoggingFetcher implements linkcollect.Fetcher.
var _ linkcollect.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   linkcollect.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next linkcollect.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *linkcollect.FetchResult, err error) {
	defer func(begin time.Time) {
		var finalURL string
		var size int
		if result != nil {
			finalURL = result.FinalURL
			size = len(result.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"final", finalURL,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
