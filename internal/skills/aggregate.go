// Package skills merges and deduplicates skill lists gathered from multiple
// providers into a single display-ready set.
package skills

import (
	"strings"
	"unicode"

	"github.com/cvera/cv-import/internal/types"
)

// DefaultMax is the default cap on the merged skill set.
const DefaultMax = 30

// Aggregator merges skill lists. Max bounds the result size; zero or negative
// falls back to DefaultMax.
type Aggregator struct {
	Max int
}

// Merge concatenates the input lists in the order given (primary source
// first), deduplicates case-insensitively keeping the first-seen casing, and
// truncates to the configured maximum. Later-source entries are dropped first
// on truncation because they carry lower priority.
func (a Aggregator) Merge(lists ...[]string) types.SkillSet {
	maxSize := a.Max
	if maxSize <= 0 {
		maxSize = DefaultMax
	}

	merged := make(types.SkillSet, 0, maxSize)
	seen := make(map[string]struct{})

	for _, list := range lists {
		for _, raw := range list {
			name := displayName(raw)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, name)
			if len(merged) == maxSize {
				return merged
			}
		}
	}
	return merged
}

// ExtractNames flattens a provider skill list whose elements may be bare
// strings or objects carrying the name under "name" or "skill".
func ExtractNames(items []any) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok && name != "" {
				names = append(names, name)
			} else if name, ok := v["skill"].(string); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// displayName trims a raw skill and re-title-cases single-token entries for
// display consistency. Multi-token entries keep their original casing, since
// title-casing would mangle names like "Node.js" or "CI/CD pipelines".
func displayName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return ""
	}
	if strings.ContainsRune(name, ' ') {
		return name
	}
	runes := []rune(name)
	return string(unicode.ToUpper(runes[0])) + string(runes[1:])
}
