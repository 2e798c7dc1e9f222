package k8swatch

import (
	"context"
	"testing"
)

func newTestSequence(body string) *Sequence[testObject] {
	return newSequence(context.Background(), newTestState(body))
}

func TestSequenceNextDelegatesToStep(t *testing.T) {
	body := `{"type":"ADDED","object":{"metadata":{"resourceVersion":"0"}}}` + "\n" +
		`{"type":"MODIFIED","object":{"metadata":{"resourceVersion":"1"}}}` + "\n"
	seq := newTestSequence(body)

	if _, ok := seq.Next().(WatchResponse[testObject]); !ok {
		t.Fatal("first Next did not yield a WatchResponse")
	}
	if _, ok := seq.Next().(WatchResponse[testObject]); !ok {
		t.Fatal("second Next did not yield a WatchResponse")
	}
	if seq.ResourceVersion() != "1" {
		t.Fatalf("ResourceVersion() = %q, want 1", seq.ResourceVersion())
	}
}

// Taking a finite N from an otherwise-unbounded sequence always terminates,
// even when every line succeeds.
func TestSequenceTakeFiniteAlwaysTerminates(t *testing.T) {
	body := `{"type":"ADDED","object":{"metadata":{"resourceVersion":"0"}}}` + "\n" +
		`{"type":"ADDED","object":{"metadata":{"resourceVersion":"1"}}}` + "\n" +
		`{"type":"ADDED","object":{"metadata":{"resourceVersion":"2"}}}` + "\n"
	seq := newTestSequence(body)

	items := seq.Take(3)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, item := range items {
		if _, ok := item.(WatchResponse[testObject]); !ok {
			t.Fatalf("item %d: got %#v, want WatchResponse", i, item)
		}
	}
}

func TestSequenceTakeStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seq := newSequence(ctx, newTestState(`{"type":"ADDED","object":{"metadata":{}}}`+"\n"))

	items := seq.Take(5)
	if len(items) != 0 {
		t.Fatalf("got %d items after cancellation, want 0", len(items))
	}
}

func TestSequenceCloseReleasesBodyAndIsIdempotent(t *testing.T) {
	seq := newTestSequence(`{"type":"ADDED","object":{"metadata":{}}}` + "\n")

	if err := seq.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if seq.state.body != nil {
		t.Fatal("body handle not cleared after Close")
	}
	if err := seq.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
