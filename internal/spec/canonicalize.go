package spec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/polyforge/polyforge/internal/errors"
)

// Canonicalize returns a canonical JSON representation of the specification
// with stable key ordering, suitable for content hashing. Two structurally
// identical specifications always canonicalize to identical bytes.
func Canonicalize(s *Specification) ([]byte, error) {
	// Round-trip through generic maps so key ordering can be normalized.
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSpecMarshal, "marshal spec", err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSpecMarshal, "normalize spec", err)
	}

	return json.Marshal(sortKeys(generic))
}

// Hash computes the blake3 hash of the canonicalized specification.
// The hash identifies one immutable specification snapshot: it keys the
// generation cache and appears on every result produced from that snapshot.
func Hash(s *Specification) (string, error) {
	canonical, err := Canonicalize(s)
	if err != nil {
		return "", fmt.Errorf("canonicalize spec: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash spec: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// HashBytes computes the blake3 hash of arbitrary content, used for
// artifact content addressing.
func HashBytes(content []byte) string {
	hasher := blake3.New()
	hasher.Write(content)
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// sortKeys recursively sorts map keys for stable JSON output
func sortKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sorted := make(map[string]interface{}, len(val))
		for _, k := range keys {
			sorted[k] = sortKeys(val[k])
		}
		return sorted

	case []interface{}:
		for i, item := range val {
			val[i] = sortKeys(item)
		}
		return val

	default:
		return v
	}
}
