package ir

import (
	"strings"
)

// QuoteIdentifier back-quotes a MySQL identifier, doubling any embedded back-quote
func QuoteIdentifier(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

// QualifyName returns `db`.`name`, or just `name` when db is blank
func QualifyName(databaseName, name string) string {
	if strings.TrimSpace(databaseName) == "" {
		return QuoteIdentifier(name)
	}
	return QuoteIdentifier(databaseName) + "." + QuoteIdentifier(name)
}

// QuoteString renders a single-quoted MySQL string literal
func QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return "'" + s + "'"
}

// QuoteIdentifierList quotes each name and joins them with commas (no spaces)
func QuoteIdentifierList(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, QuoteIdentifier(n))
	}
	return strings.Join(quoted, ",")
}
