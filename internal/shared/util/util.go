package util

import "sort"

// SortedStringKeys returns the keys of a string-keyed map in sorted order.
func SortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SplitTopLevel splits s on commas that are not nested inside (), [], {},
// generic angle brackets, or string/char literals. Attribute argument lists
// and signature specs need this so nested expressions stay intact.
func SplitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	inString := false
	inChar := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString || inChar {
			if escaped {
				escaped = false
				continue
			}
			switch {
			case c == '\\':
				escaped = true
			case c == '"' && inString:
				inString = false
			case c == '\'' && inChar:
				inChar = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '\'':
			inChar = true
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
