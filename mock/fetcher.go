package mock

import (
	"context"

	"github.com/fwojciec/papermill"
)

var _ papermill.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of papermill.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req papermill.FetchRequest) (*papermill.Payload, error)
}

func (f *Fetcher) Fetch(ctx context.Context, req papermill.FetchRequest) (*papermill.Payload, error) {
	return f.FetchFn(ctx, req)
}
