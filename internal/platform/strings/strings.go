// Package strings holds small string helpers shared by modules and middleware
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Blank reports whether s has no non whitespace content
func Blank(s string) bool { return std.TrimSpace(s) == "" }

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if Blank(s) {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a route root like /analyses
// a single leading slash, no trailing slash; panics when nothing is left
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
