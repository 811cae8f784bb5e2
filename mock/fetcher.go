package mock

import (
	"context"

	"github.com/fwojciec/linkcollect"
)

var _ linkcollect.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of linkcollect.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*linkcollect.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*linkcollect.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
