package k8swatch

import "testing"

func TestClassifyWatchResponse(t *testing.T) {
	line := `{"type":"ADDED","object":{"metadata":{"resourceVersion":"0"}}}`
	item := classify[testObject](line)

	resp, ok := item.(WatchResponse[testObject])
	if !ok {
		t.Fatalf("got %#v, want WatchResponse", item)
	}
	if resp.Kind != EventAdded {
		t.Errorf("got kind %q, want ADDED", resp.Kind)
	}
	if resp.Data.Metadata.ResourceVersion != "0" {
		t.Errorf("got rv %q, want 0", resp.Data.Metadata.ResourceVersion)
	}
}

func TestClassifyMissingTypeField(t *testing.T) {
	item := classify[testObject](`{"object":{"metadata":{}}}`)
	if _, ok := item.(Error); !ok {
		t.Fatalf("got %#v, want Error", item)
	}
}

func TestClassifyMissingObjectField(t *testing.T) {
	item := classify[testObject](`{"type":"ADDED"}`)
	if _, ok := item.(Error); !ok {
		t.Fatalf("got %#v, want Error", item)
	}
}

func TestClassifyNullObjectField(t *testing.T) {
	item := classify[testObject](`{"type":"ADDED","object":null}`)
	if _, ok := item.(Error); !ok {
		t.Fatalf("got %#v, want Error", item)
	}
}

func TestClassifyMalformedJSON(t *testing.T) {
	item := classify[testObject](`"{"`)
	if _, ok := item.(Error); !ok {
		t.Fatalf("got %#v, want Error", item)
	}
}

func TestClassifyErrorStatusStaleResourceVersion(t *testing.T) {
	line := `{"type":"ERROR","object":{"kind":"Status","apiVersion":"v1","metadata":{},` +
		`"status":"Failure","message":"too old resource version: 3981707 (3987044)",` +
		`"reason":"Gone","code":410}}`
	item := classify[testObject](line)

	inv, ok := item.(InvalidResourceVersion)
	if !ok {
		t.Fatalf("got %#v, want InvalidResourceVersion", item)
	}
	if !inv.HasNewVersion || inv.NewVersion != "3987044" {
		t.Errorf("got %+v, want NewVersion=3987044", inv)
	}
}

func TestClassifyErrorStatusMessageNotTooOld(t *testing.T) {
	line := `{"type":"ERROR","object":{"kind":"Status","status":"Failure","message":"boom","code":500}}`
	item := classify[testObject](line)

	inv, ok := item.(InvalidResourceVersion)
	if !ok {
		t.Fatalf("got %#v, want InvalidResourceVersion", item)
	}
	if inv.HasNewVersion {
		t.Errorf("got %+v, want HasNewVersion=false", inv)
	}
}

func TestClassifyBookmark(t *testing.T) {
	line := `{"type":"BOOKMARK","object":{"metadata":{"resourceVersion":"55"}}}`
	item := classify[testObject](line)

	resp, ok := item.(WatchResponse[testObject])
	if !ok {
		t.Fatalf("got %#v, want WatchResponse", item)
	}
	if resp.Kind != EventBookmark || resp.Data.Metadata.ResourceVersion != "55" {
		t.Errorf("got %+v", resp)
	}
}
