package k8swatch

import "context"

// Sequence is a pull-driven, single-consumer handle owning a WatcherState.
// Each Next() is one application of step; the sequence never terminates
// itself — the caller decides when to stop by simply not calling Next()
// again, and releases the underlying connection by calling Close().
type Sequence[T any] struct {
	ctx   context.Context
	state *WatcherState[T]
}

func newSequence[T any](ctx context.Context, state *WatcherState[T]) *Sequence[T] {
	return &Sequence[T]{ctx: ctx, state: state}
}

// Next pulls the next WatchItem. It always returns, even across reconnects
// and corrupt lines — there is no terminal outcome short of the caller
// stopping iteration.
func (s *Sequence[T]) Next() WatchItem[T] {
	return step(s.ctx, s.state)
}

// ResourceVersion reports the cursor currently tracked by the session.
func (s *Sequence[T]) ResourceVersion() string {
	return s.state.ResourceVersion()
}

// Close releases the current body handle, closing its socket. Safe to call
// more than once.
func (s *Sequence[T]) Close() error {
	return s.state.Close()
}

// Take pulls up to n items, stopping early only if ctx is done. It's a
// convenience for callers (and tests) that want a finite slice out of an
// otherwise-infinite sequence.
func (s *Sequence[T]) Take(n int) []WatchItem[T] {
	items := make([]WatchItem[T], 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-s.ctx.Done():
			return items
		default:
		}
		items = append(items, s.Next())
	}
	return items
}
