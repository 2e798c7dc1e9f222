package k8swatch

import jsoniter "github.com/json-iterator/go"

// jsonAPI is the codec used for both line decoding and per-type unmarshal.
// json-iterator is already present transitively through
// client-go/apimachinery; this repo promotes it to a direct dependency
// rather than falling back to encoding/json for a concern the surrounding
// ecosystem already has an opinion on.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// watchEnvelope is the outer shape of every line in the stream: exactly the
// fields `type` and `object` are required, everything else is ignored.
type watchEnvelope struct {
	Type   string              `json:"type"`
	Object jsoniter.RawMessage `json:"object"`
}

func decodeEnvelope(line string) (watchEnvelope, error) {
	var env watchEnvelope
	if err := jsonAPI.UnmarshalFromString(line, &env); err != nil {
		return watchEnvelope{}, err
	}
	return env, nil
}
