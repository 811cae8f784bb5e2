package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/linkcollect"
)

// Ensure LoggingExtractor implements linkcollect.LinkExtractor.
var _ linkcollect.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with debug logging.
type LoggingExtractor struct {
	next   linkcollect.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkcollect.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractHrefs delegates to the wrapped extractor and logs the href count.
func (e *LoggingExtractor) ExtractHrefs(html string) (hrefs []string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"bytes", len(html),
			"count", len(hrefs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractHrefs(html)
}
