package slog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/linkcollect"
)

// Ensure LoggingSink implements linkcollect.LinkSink.
var _ linkcollect.LinkSink = (*LoggingSink)(nil)

// LoggingSink wraps a LinkSink with debug logging.
type LoggingSink struct {
	next   linkcollect.LinkSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next linkcollect.LinkSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Save delegates to the wrapped sink and logs the list size and digest.
// Equal digests across runs mean the saved list did not change.
func (s *LoggingSink) Save(ctx context.Context, links []string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"count", len(links),
			"digest", Digest(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, links)
}

// Digest returns an xxhash of the newline-joined links as 16 hex digits.
func Digest(links []string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(links, "\n")))
}
