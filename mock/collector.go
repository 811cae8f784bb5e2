package mock

import (
	"context"

	"github.com/fwojciec/linkcollect"
)

var _ linkcollect.Collector = (*Collector)(nil)

// Collector is a mock implementation of linkcollect.Collector.
type Collector struct {
	CollectFn func(ctx context.Context, rawURL string) linkcollect.Outcome
}

func (c *Collector) Collect(ctx context.Context, rawURL string) linkcollect.Outcome {
	return c.CollectFn(ctx, rawURL)
}
