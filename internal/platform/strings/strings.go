// Package strings provides string helpers
package strings

import std "strings"

// Contains reports whether sub is within s
func Contains(s, sub string) bool { return std.Contains(s, sub) }

// ContainsFold reports whether sub is within s, case-insensitively
func ContainsFold(s, sub string) bool {
	return std.Contains(std.ToLower(s), std.ToLower(sub))
}
