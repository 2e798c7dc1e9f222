package k8swatch

import "strings"

// queryParam is an ordered, optionally-absent key/value pair.
type queryParam struct {
	key     string
	value   string
	present bool
}

// buildWatchURL assembles "<base>?watch=true[&k=v...]" preserving caller
// order for every present pair. No percent-encoding happens here — the HTTP
// adapter's request builder is responsible for that.
func buildWatchURL(base string, params ...queryParam) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('?')
	b.WriteString("watch=true")

	for _, p := range params {
		if !p.present {
			continue
		}
		b.WriteByte('&')
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}

	return b.String()
}

func optionalParam(key, value string) queryParam {
	return queryParam{key: key, value: value, present: value != ""}
}
