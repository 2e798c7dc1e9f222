package k8swatch

import "testing"

type testObject struct {
	Metadata struct {
		ResourceVersion string `json:"resourceVersion"`
		Name            string `json:"name"`
	} `json:"metadata"`
}

func (o testObject) GetResourceVersion() string {
	return o.Metadata.ResourceVersion
}

func TestParseTooOldMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
		wantOK  bool
	}{
		{"too old resource version: 3981707 (3987044)", "3987044", true},
		{"too old resource version: 0 (1)", "1", true},
		{"too old resource version: 123456789 (987654321)", "987654321", true},
		{"something unrelated", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := parseTooOldMessage(tc.message)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("parseTooOldMessage(%q) = (%q, %v), want (%q, %v)", tc.message, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestExtractResourceVersionHasMetadata(t *testing.T) {
	var obj testObject
	obj.Metadata.ResourceVersion = "42"

	rv, ok := extractResourceVersion(obj, nil)
	if !ok || rv != "42" {
		t.Fatalf("got (%q, %v), want (42, true)", rv, ok)
	}
}

func TestExtractResourceVersionAbsent(t *testing.T) {
	var obj testObject // ResourceVersion left empty

	rv, ok := extractResourceVersion(obj, nil)
	if ok || rv != "" {
		t.Fatalf("got (%q, %v), want (\"\", false)", rv, ok)
	}
}

func TestExtractResourceVersionCustomExtractor(t *testing.T) {
	type opaque struct{ version string }
	extractFunc := func(o opaque) (string, bool) { return o.version, o.version != "" }

	rv, ok := extractResourceVersion(opaque{version: "99"}, extractFunc)
	if !ok || rv != "99" {
		t.Fatalf("got (%q, %v), want (99, true)", rv, ok)
	}
}
