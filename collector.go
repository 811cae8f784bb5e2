package linkcollect

import "context"

// Collector runs the whole collection for one user-supplied URL.
type Collector interface {
	// Collect never returns a raw error: every failure is reported through
	// an OutcomeFailure outcome.
	Collect(ctx context.Context, rawURL string) Outcome
}
