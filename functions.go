package pgdesk

import "strings"

// sanitizeIdent allows only letters, digits and underscore.
func sanitizeIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			continue
		}
		return false
	}
	return true
}

// QuoteIdentifier wraps an identifier in double quotes, doubling any
// embedded double quotes. Re-quoting an already quoted string is not
// supported.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QualifiedName returns the quoted schema-qualified table name. An empty
// schema yields just the quoted table.
func QualifiedName(schema, table string) string {
	if schema == "" {
		return QuoteIdentifier(table)
	}
	return QuoteIdentifier(schema) + "." + QuoteIdentifier(table)
}
