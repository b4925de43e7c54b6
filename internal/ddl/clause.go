package ddl

import (
	"strings"
)

// IsBlank reports whether s is empty or whitespace only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Offset converts a 1-based page number into a row offset. Pages below 1
// and non-positive sizes yield 0.
func Offset(pageNo, pageSize int) int {
	if pageNo < 1 || pageSize < 1 {
		return 0
	}
	return (pageNo - 1) * pageSize
}

// Statements joins complete statements with newlines, skipping empty ones
func Statements(stmts ...string) string {
	var out []string
	for _, s := range stmts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}
