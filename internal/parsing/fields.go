package parsing

import (
	"fmt"
	"strings"

	"github.com/cvera/cv-import/internal/types"
)

// Resolve looks up a logical field in a provider-shaped record by trying each
// candidate key in priority order. The order of keys encodes provider
// precedence: the primary provider's naming comes first. Nil values, empty
// strings, and empty lists count as absent.
func Resolve(record types.RawProfile, keys ...string) (any, bool) {
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
		case []any:
			if len(v) == 0 {
				continue
			}
		case map[string]any:
			if len(v) == 0 {
				continue
			}
		}
		return value, true
	}
	return nil, false
}

// ResolveString resolves a field and coerces it to a string. Numeric values
// are rendered with fmt to tolerate providers that emit years as numbers.
// Returns "" when the field is absent or not scalar.
func ResolveString(record types.RawProfile, keys ...string) string {
	value, ok := Resolve(record, keys...)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

// ResolveBool resolves a field as a boolean. String values "true"/"yes" count
// as true. Returns false when absent.
func ResolveBool(record types.RawProfile, keys ...string) bool {
	value, ok := Resolve(record, keys...)
	if !ok {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		lower := strings.ToLower(strings.TrimSpace(v))
		return lower == "true" || lower == "yes"
	default:
		return false
	}
}

// ResolveList resolves a field as a list of arbitrary values. A scalar value
// is promoted to a single-element list, since some providers collapse
// one-element arrays.
func ResolveList(record types.RawProfile, keys ...string) []any {
	value, ok := Resolve(record, keys...)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case []any:
		return v
	default:
		return []any{v}
	}
}

// ResolveMapList resolves a field as a list of records, skipping elements
// that are not objects.
func ResolveMapList(record types.RawProfile, keys ...string) []types.RawProfile {
	items := ResolveList(record, keys...)
	if len(items) == 0 {
		return nil
	}
	records := make([]types.RawProfile, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, types.RawProfile(m))
		}
	}
	return records
}
