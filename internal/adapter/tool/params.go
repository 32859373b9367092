package tool

import "strings"

// firstParam returns the first non-empty value among the given keys.
// Small models rename parameters freely ("item" for "query", "expr" for
// "expression"), so each tool accepts a short alias chain instead of
// rejecting the call.
func firstParam(params map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := params[k]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
