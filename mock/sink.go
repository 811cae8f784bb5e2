package mock

import (
	"context"

	"github.com/fwojciec/linkcollect"
)

var _ linkcollect.LinkSink = (*LinkSink)(nil)

// LinkSink is a mock implementation of linkcollect.LinkSink.
type LinkSink struct {
	SaveFn func(ctx context.Context, links []string) error
}

func (s *LinkSink) Save(ctx context.Context, links []string) error {
	return s.SaveFn(ctx, links)
}
