package k8swatch

import (
	"context"

	"github.com/fteychene/k8s-resources-watcher-go/internal/debug"
)

// Options configures a watch session. FieldSelector, LabelSelector and
// ResourceVersion are immutable for the life of the session once handed to
// Watch. ResourceVersionFunc overrides the HasMetadata-capability lookup
// for payload types that don't implement it.
type Options[T any] struct {
	FieldSelector       string
	LabelSelector       string
	ResourceVersion     string
	ResourceVersionFunc func(T) (string, bool)
	Logger              debug.Logger
}

func (o Options[T]) logger() debug.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return debug.GetLogger()
}

// Watch is the public entry point: it performs the first handshake
// synchronously and, only on success, returns a Sequence the caller can pull
// from indefinitely. A handshake failure is the one terminal error this
// package ever returns — every later failure surfaces as an Error item
// instead.
func Watch[T any](ctx context.Context, client *HTTPClient, path string, opts Options[T]) (*Sequence[T], error) {
	state := &WatcherState[T]{
		baseURL:         path,
		http:            client,
		resourceVersion: opts.ResourceVersion,
		fieldSelector:   opts.FieldSelector,
		labelSelector:   opts.LabelSelector,
		extractFunc:     opts.ResourceVersionFunc,
		logger:          opts.logger(),
	}

	req, err := buildWatchCall(client, ctx, state)
	if err != nil {
		return nil, err
	}

	body, err := client.executeCall(req)
	if err != nil {
		state.log("handshake failed for %s: %v", path, err)
		return nil, err
	}

	state.setBody(body)
	state.log("watch session opened for %s (resourceVersion=%q)", path, state.resourceVersion)

	return newSequence(ctx, state), nil
}
