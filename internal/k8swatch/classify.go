package k8swatch

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// classify turns one decoded JSON line into a WatchItem. It is pure: the
// resulting state transition is applied by the caller in step.go, not here.
func classify[T any](line string) WatchItem[T] {
	env, err := decodeEnvelope(line)
	if err != nil {
		return Error{Cause: err}
	}

	if env.Type == "" {
		return Error{Cause: newIllegalArgument("Json object should have a type field")}
	}

	if env.Type == string(EventError) {
		if isAbsentOrNull(env.Object) {
			return Error{Cause: newIllegalArgument("Json object should have an object field")}
		}
		var status metav1.Status
		if err := jsonAPI.Unmarshal(env.Object, &status); err != nil {
			return Error{Cause: err}
		}
		newVersion, ok := parseTooOldMessage(status.Message)
		return InvalidResourceVersion{NewVersion: newVersion, HasNewVersion: ok}
	}

	if isAbsentOrNull(env.Object) {
		return Error{Cause: newIllegalArgument("Json object should have an object field")}
	}

	var data T
	if err := jsonAPI.Unmarshal(env.Object, &data); err != nil {
		return Error{Cause: err}
	}

	return WatchResponse[T]{Kind: EventKind(env.Type), Data: data}
}

func isAbsentOrNull(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}
