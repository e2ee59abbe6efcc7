// Package format holds the pure display helpers shared by the read models and templates.
package format

import "strings"

// ParseFullName splits a stored full name into first and last name parts. Everything after the
// first whitespace-separated token belongs to the last name, rejoined with single spaces.
func ParseFullName(raw string) (first, last string) {
	parts := strings.Fields(raw)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
