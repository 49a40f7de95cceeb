package mock

import (
	"context"

	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var _ themec.Watcher = (*Watcher)(nil)

// Watcher is a mock implementation of themec.Watcher.
type Watcher struct {
	WatchFn func(ctx context.Context, path string, onChange func(context.Context) error) error
}

func (w *Watcher) Watch(ctx context.Context, path string, onChange func(context.Context) error) error {
	return w.WatchFn(ctx, path, onChange)
}
