package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"smartdocs/internal/output"
)

// fixturePlaceholder replaces the absolute fixture root in golden files.
const fixturePlaceholder = "$FIXTURE"

// volatileFields differ between otherwise identical runs.
var volatileFields = map[string]bool{
	"runId":      true,
	"durationMs": true,
	"duration":   true,
}

// Normalize converts data to its generic JSON form, drops volatile fields and
// replaces machine-specific paths. Slice order is kept: it is part of the
// output contract.
func Normalize(t *testing.T, fixture *FixtureContext, data any) any {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal data for normalization: %v", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("Failed to unmarshal data for normalization: %v", err)
	}
	return normalizeValue(generic, fixture.Root)
}

func normalizeValue(v any, root string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if volatileFields[k] {
				continue
			}
			out[k] = normalizeValue(item, root)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item, root)
		}
		return out
	case string:
		return NormalizePaths(val, root)
	default:
		return v
	}
}

// NormalizePaths replaces root with a placeholder and uses forward slashes.
func NormalizePaths(s, root string) string {
	if root != "" {
		s = strings.ReplaceAll(s, root, fixturePlaceholder)
	}
	return strings.ReplaceAll(s, "\\", "/")
}

// MarshalNormalized normalizes data and encodes it as sorted, indented JSON
// with a trailing newline.
func MarshalNormalized(t *testing.T, fixture *FixtureContext, data any) []byte {
	t.Helper()

	encoded, err := output.DeterministicEncodeIndented(Normalize(t, fixture, data), "  ")
	if err != nil {
		t.Fatalf("Failed to marshal normalized data: %v", err)
	}
	return append(encoded, '\n')
}
