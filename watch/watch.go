// Package watch is the public surface of the Kubernetes resource-watch
// client: it re-exports the state machine implemented in
// internal/k8swatch so callers import one path instead of reaching into
// internal/.
package watch

import (
	"context"
	"time"

	"github.com/fteychene/k8s-resources-watcher-go/internal/k8swatch"
)

// EventKind is the verbatim `type` field of a watch line.
type EventKind = k8swatch.EventKind

const (
	EventAdded    = k8swatch.EventAdded
	EventModified = k8swatch.EventModified
	EventDeleted  = k8swatch.EventDeleted
	EventBookmark = k8swatch.EventBookmark
	EventError    = k8swatch.EventError
)

// WatchItem is the sole event type a Sequence yields. Callers type-switch
// on WatchResponse[T] / InvalidResourceVersion / NoData / Error.
type WatchItem[T any] = k8swatch.WatchItem[T]

type (
	WatchResponse[T any]   = k8swatch.WatchResponse[T]
	InvalidResourceVersion = k8swatch.InvalidResourceVersion
	NoData                 = k8swatch.NoData
	Error                  = k8swatch.Error
)

// HasMetadata is the capability a decoded payload type must satisfy for the
// resource-version extractor to read its cursor without an explicit
// ResourceVersionFunc.
type HasMetadata = k8swatch.HasMetadata

// ApiError is the error envelope a non-2xx response to the handshake or to a
// later reopen is reported as. Transport-level failures are returned as-is.
type ApiError = k8swatch.ApiError

// HTTPClient is the HTTP adapter: an origin plus something that can send
// an *http.Request and return an *http.Response.
type HTTPClient = k8swatch.HTTPClient
type HTTPDoer = k8swatch.HTTPDoer

// Options configures a watch session. See k8swatch.Options for field docs.
type Options[T any] = k8swatch.Options[T]

// Sequence is the pull-driven, single-consumer handle returned by Resource.
type Sequence[T any] = k8swatch.Sequence[T]

// ReconnectBackoff is an opt-in reconnect-delay helper. The core never
// calls it itself; callers sleep between Error items if they want backoff.
// Next takes the triggering cause so a caller can log it without threading
// the error through separately.
type ReconnectBackoff = k8swatch.ReconnectBackoff

// NewReconnectBackoff returns a backoff with 1s base / 30s max delay,
// doubling each attempt, up to 10% shaved off by jitter.
func NewReconnectBackoff() *ReconnectBackoff {
	return k8swatch.NewReconnectBackoff()
}

// NewReconnectBackoffWithConfig returns a backoff with custom parameters.
func NewReconnectBackoffWithConfig(base, maxDelay time.Duration, factor, jitterFraction float64) *ReconnectBackoff {
	return k8swatch.NewReconnectBackoffWithConfig(base, maxDelay, factor, jitterFraction)
}

// NewHTTPClient builds an HTTPClient from kubeconfig (in-cluster, then
// $KUBECONFIG, then ~/.kube/config), wiring client-go's TLS/bearer-token
// transport and an idle-read timeout on every connection it dials.
func NewHTTPClient(kubeconfigPath, contextName string, idleTimeout time.Duration) (*HTTPClient, error) {
	return k8swatch.NewHTTPClient(kubeconfigPath, contextName, idleTimeout)
}

// Resource opens a watch session against path (e.g. "/api/v1/pods") and
// performs the first handshake synchronously. Only a handshake failure is
// returned as an error — every later failure surfaces as an Error item on
// the returned Sequence instead.
func Resource[T any](ctx context.Context, client *HTTPClient, path string, opts Options[T]) (*Sequence[T], error) {
	return k8swatch.Watch[T](ctx, client, path, opts)
}
