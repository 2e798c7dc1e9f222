package k8swatch

import (
	"context"
)

// step is the single state transition: ensure a live body, read one line,
// classify it, and apply the resulting state update. It always returns
// exactly one WatchItem.
func step[T any](ctx context.Context, s *WatcherState[T]) WatchItem[T] {
	if err := ensureBody(ctx, s); err != nil {
		return Error{Cause: err}
	}
	return readOne(s)
}

// ensureBody reuses the current body if it's live,
// otherwise reopen. Exhaustion of an already-live body is discovered
// lazily by readOne's next read (translateReadError marks it failed for the
// following ensureBody call) rather than probed here — a freshly opened
// body, though, is peeked once immediately so a dead-on-arrival connection
// doesn't look like a successful reopen.
func ensureBody[T any](ctx context.Context, s *WatcherState[T]) error {
	if s.body != nil {
		return nil
	}

	s.log("reopening watch session for %s (resourceVersion=%q)", s.baseURL, s.resourceVersion)

	req, err := buildWatchCall(s.http, ctx, s)
	if err != nil {
		s.markFailed(err)
		return err
	}

	body, err := s.http.executeCall(req)
	if err != nil {
		s.markFailed(err)
		return err
	}

	if body.peekExhausted() {
		body.Close()
		s.markFailed(errNullResponse)
		return errNullResponse
	}

	s.setBody(body)
	return nil
}

// readOne reads one line off the (now guaranteed live) body, classifies it,
// and updates state accordingly. A corrupt line or a decode mismatch never
// ends the stream — the body is preserved so the next pull attempts the
// next line.
func readOne[T any](s *WatcherState[T]) WatchItem[T] {
	if s.bodyErr != nil {
		return Error{Cause: s.bodyErr}
	}

	line, err := s.body.readLine()
	if err != nil {
		return translateReadError[T](s, err)
	}

	item := classify[T](line)
	if _, ok := item.(Error); ok {
		s.logSample("failed to decode watch line", line)
	}
	applyStateUpdate(s, item)
	return item
}

// translateReadError maps a line-read failure to NoData (idle timeout,
// session preserved) or Error. Unlike a malformed-JSON decode failure (which
// leaves the body alone so the next pull tries the next line), any failure
// reading the body itself — exhaustion or a transport error — poisons the
// session so the next step reopens it.
func translateReadError[T any](s *WatcherState[T], err error) WatchItem[T] {
	if isTimeout(err) {
		return NoData{}
	}
	s.markFailed(err)
	return Error{Cause: err}
}

// applyStateUpdate advances session state based on the outcome of readOne.
func applyStateUpdate[T any](s *WatcherState[T], item WatchItem[T]) {
	switch v := item.(type) {
	case WatchResponse[T]:
		if rv, ok := extractResourceVersion(v.Data, s.extractFunc); ok {
			s.resourceVersion = rv
		}
	case InvalidResourceVersion:
		if v.HasNewVersion {
			s.resourceVersion = v.NewVersion
		}
		s.markFailed(newIllegalState("Outdated body (invalid resourceVersion)"))
	case NoData, Error:
		// session preserved, nothing to update.
	}
}
