// Package sqlguard validates that ad-hoc queries are read-only.
package sqlguard

import "strings"

// IsReadOnly reports whether the query is a plain SELECT statement.
// Leading whitespace is ignored and the keyword match is
// case-insensitive. Anything else (INSERT, UPDATE, DELETE, DDL, and
// other write statements) is rejected.
func IsReadOnly(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < len("select") {
		return false
	}
	return strings.EqualFold(trimmed[:len("select")], "select")
}
