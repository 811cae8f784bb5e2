package linkcollect

import "context"

// LinkSink persists a collected link list.
type LinkSink interface {
	// Save replaces any previously saved list with links.
	// Failures are reported as EPERSIST errors.
	Save(ctx context.Context, links []string) error
}
