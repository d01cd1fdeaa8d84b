package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fingerprint computes a short structural hash of a snapshot: the first 8
// bytes of SHA256 over its JSON encoding. Two snapshots with equal structure
// share a fingerprint regardless of identity.
func Fingerprint(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Fallback for values JSON cannot encode (funcs, channels)
		return fmt.Sprintf("opaque-%T", v)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}

// RenderYAML renders a snapshot as YAML for logs and inspection.
// yaml.v3 panics on kinds it cannot encode; that is reported as an error.
func RenderYAML(v any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("yaml marshal: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("yaml marshal: %w", err)
	}
	return string(data), nil
}
