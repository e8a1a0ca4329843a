package helpers

import "strings"

// RemovePrefix returns s without prefix when s starts with it exactly
func RemovePrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// ReplaceNBSP turns non-breaking spaces into regular spaces
func ReplaceNBSP(s string) string {
	return strings.ReplaceAll(s, "\u00a0", " ")
}
