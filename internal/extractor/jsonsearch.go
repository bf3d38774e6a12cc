package extractor

import (
	"sort"
	"strconv"
	"strings"
)

// findValue searches decoded JSON depth-first for the first of the given
// keys. The current node is checked before descending. Go maps iterate in
// random order, so descent walks child keys sorted to keep multi-match
// documents reproducible. Acyclic JSON input guarantees termination.
func findValue(node any, keys ...string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range keys {
			if v, ok := n[k]; ok {
				return v, true
			}
		}
		for _, k := range sortedKeys(n) {
			if v, ok := findValue(n[k], keys...); ok {
				return v, true
			}
		}
	case []any:
		for _, item := range n {
			if v, ok := findValue(item, keys...); ok {
				return v, true
			}
		}
	}
	return nil, false
}

// findObjectWithKey returns the first object that directly contains one of
// the given keys, using the same traversal order as findValue.
func findObjectWithKey(node any, keys ...string) (map[string]any, bool) {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range keys {
			if _, ok := n[k]; ok {
				return n, true
			}
		}
		for _, k := range sortedKeys(n) {
			if m, ok := findObjectWithKey(n[k], keys...); ok {
				return m, true
			}
		}
	case []any:
		for _, item := range n {
			if m, ok := findObjectWithKey(item, keys...); ok {
				return m, true
			}
		}
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asString renders a JSON leaf as a price-candidate string. Objects, arrays,
// booleans and nulls are not price material and yield "".
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// firstString returns the first non-empty stringified value among the given
// keys of an object.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// jsonObjectAt extracts a balanced JSON object from s starting at the first
// '{' at or after pos. Braces inside string literals are ignored.
func jsonObjectAt(s string, pos int) (string, bool) {
	start := strings.IndexByte(s[pos:], '{')
	if start < 0 {
		return "", false
	}
	start += pos

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
