// Package k8swatch implements the watch state machine: it turns a single
// hanging-GET HTTP response against a Kubernetes `?watch=true` endpoint into
// a pull-driven sequence of typed resource-change events.
package k8swatch

// EventKind is the verbatim `type` field of a watch line, e.g. "ADDED",
// "MODIFIED", "DELETED", "BOOKMARK". It is passed through unexamined so new
// kinds the server introduces never need a code change here.
type EventKind string

const (
	EventAdded    EventKind = "ADDED"
	EventModified EventKind = "MODIFIED"
	EventDeleted  EventKind = "DELETED"
	EventBookmark EventKind = "BOOKMARK"
	EventError    EventKind = "ERROR"
)

// WatchItem is the sole public event type a watch sequence yields. It is a
// closed sum over four variants; callers type-switch on the concrete types
// below. The unexported marker method keeps the set closed to this package.
type WatchItem[T any] interface {
	isWatchItem()
}

// WatchResponse carries one decoded resource change.
type WatchResponse[T any] struct {
	Kind EventKind
	Data T
}

func (WatchResponse[T]) isWatchItem() {}

// InvalidResourceVersion is emitted when the server sends a `type=="ERROR"`
// Status envelope. NewVersion is the resumable version parsed out of a
// "too old resource version: X (Y)" message; HasNewVersion is false when the
// message didn't match that pattern, in which case the caller should keep
// using whatever resourceVersion it already had.
type InvalidResourceVersion struct {
	NewVersion    string
	HasNewVersion bool
}

func (InvalidResourceVersion) isWatchItem() {}

// NoData signals an idle read timeout. The session is untouched; the caller
// is expected to pull again.
type NoData struct{}

func (NoData) isWatchItem() {}

// Error wraps any other failure: transport error, malformed JSON, a missing
// type/object field, or a decode mismatch. Emitting an Error never ends the
// sequence.
type Error struct {
	Cause error
}

func (Error) isWatchItem() {}

// HasMetadata is the capability a decoded payload type must satisfy so the
// resource-version extractor can read its cursor without a closed type
// switch over concrete Kubernetes API types. Every type embedding
// k8s.io/apimachinery's metav1.ObjectMeta already satisfies this.
type HasMetadata interface {
	GetResourceVersion() string
}
