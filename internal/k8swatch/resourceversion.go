package k8swatch

import "regexp"

// tooOldPattern matches the message Kubernetes sends in a `type=="ERROR"`
// Status when the requested resourceVersion has been compacted away, e.g.
// "too old resource version: 3981707 (3987044)". The captured group is the
// resourceVersion a watch can safely resume from.
var tooOldPattern = regexp.MustCompile(`too old resource version: \d+ \((\d+)\)`)

// parseTooOldMessage extracts the resumable resourceVersion from a stale-RV
// Status message. The second return is false when the message doesn't
// match, in which case the caller has no suggested version to resume from.
func parseTooOldMessage(message string) (string, bool) {
	m := tooOldPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractResourceVersion reads metadata.resourceVersion off a decoded
// payload using the HasMetadata capability: any type embedding
// metav1.ObjectMeta satisfies it for free, replacing a closed runtime type
// switch over concrete Kubernetes classes. extractFunc, when non-nil,
// overrides this for payload types that don't (or that the caller would
// rather not couple to apimachinery).
func extractResourceVersion[T any](data T, extractFunc func(T) (string, bool)) (string, bool) {
	if extractFunc != nil {
		return extractFunc(data)
	}

	if hm, ok := any(data).(HasMetadata); ok {
		rv := hm.GetResourceVersion()
		return rv, rv != ""
	}

	return "", false
}
