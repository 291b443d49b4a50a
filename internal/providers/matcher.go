// internal/providers/matcher.go
package providers

import "strings"

// Matches reports whether candidate contains queryName, ignoring case.
// An empty queryName matches every candidate.
func Matches(queryName, candidate string) bool {
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(queryName))
}
