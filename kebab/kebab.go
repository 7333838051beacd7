// Package kebab converts internal Go identifiers to kebab-case route
// segments, with acronym handling.
//
// Two passes:
//
//  1. insert '-' between a lowercase/digit and an uppercase letter
//     ("getUser" -> "get-User")
//  2. insert '-' between a run of uppercase letters and a following
//     uppercase+lowercase pair ("HTTPServer" -> "HTTP-Server")
//
// then lowercase the whole string.
package kebab

import "strings"

// Kebab converts name to kebab-case: getUserID -> get-user-id,
// HTTPServer -> http-server, v2Parser -> v2-parser. An acronym run
// immediately followed by a capitalized word splits before that word's
// leading capital ("HTTPServer" -> "HTTP-Server"), the standard
// acronym-boundary convention.
func Kebab(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)
	var out []rune

	for i, r := range runes {
		if i > 0 && isUpper(r) {
			prev := runes[i-1]
			if isLowerOrDigit(prev) {
				out = append(out, '-')
			} else if isUpper(prev) && i+1 < len(runes) && isLower(runes[i+1]) {
				out = append(out, '-')
			}
		}
		out = append(out, r)
	}

	return strings.ToLower(string(out))
}

// Join kebab-cases each segment and joins them with '.', building a route
// key the way the flattener composes one from a path's identifiers.
func Join(segments []string) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = Kebab(s)
	}
	return strings.Join(parts, ".")
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isLowerOrDigit(r rune) bool {
	return isLower(r) || (r >= '0' && r <= '9')
}
