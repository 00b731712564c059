package rules

import "strings"

// resolveField walks a dotted path through nested fact maps. It returns the
// value at the path and whether the path resolved at all. Traversal stops the
// moment it hits a missing key or a non-map intermediate value; it never
// panics. Array indices are not supported.
func resolveField(facts map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = facts
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
