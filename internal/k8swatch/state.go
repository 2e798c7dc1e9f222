package k8swatch

import "github.com/fteychene/k8s-resources-watcher-go/internal/debug"

// WatcherState is the single mutable session record, owned exclusively by
// the Sequence that created it. body/bodyErr together model a
// result-or-poisoned body: bodyErr nil means body is live; non-nil means the
// session is poisoned and the next step reopens it.
type WatcherState[T any] struct {
	baseURL         string
	http            *HTTPClient
	resourceVersion string
	fieldSelector   string
	labelSelector   string
	extractFunc     func(T) (string, bool)
	logger          debug.Logger

	body    *lineReader
	bodyErr error
}

// markFailed poisons the current body so the next step's ensureBody reopens
// a fresh one. If a live body is still held, markFailed closes it before
// dropping the handle.
func (s *WatcherState[T]) markFailed(cause error) {
	if s.body != nil {
		s.body.Close()
	}
	s.body = nil
	s.bodyErr = cause
}

// setBody installs a freshly opened, live body and clears any prior failure.
func (s *WatcherState[T]) setBody(b *lineReader) {
	s.body = b
	s.bodyErr = nil
}

// log and logSample tolerate a zero-value WatcherState (no logger set, as
// in unit tests that construct one directly) by falling back to the
// package-level no-op logger.
func (s *WatcherState[T]) log(format string, args ...interface{}) {
	s.loggerOrDefault().Log(format, args...)
}

func (s *WatcherState[T]) logSample(message, content string) {
	s.loggerOrDefault().LogWithSample(message, content)
}

func (s *WatcherState[T]) loggerOrDefault() debug.Logger {
	if s.logger != nil {
		return s.logger
	}
	return &debug.NoOpLogger{}
}

// ResourceVersion returns the most recently observed cursor, or "" if none
// has been seen yet this session.
func (s *WatcherState[T]) ResourceVersion() string {
	return s.resourceVersion
}

// Close releases the current body handle, if any.
func (s *WatcherState[T]) Close() error {
	if s.body != nil {
		err := s.body.Close()
		s.body = nil
		return err
	}
	return nil
}
