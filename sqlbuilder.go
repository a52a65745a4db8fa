package pgdesk

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL produces a terminated CREATE TABLE statement with
// quoted identifiers. columnDefs is the caller-supplied column definition
// text; blank or whitespace-only input is rejected before any SQL is built.
func BuildCreateTableSQL(schema, table, columnDefs string) (string, error) {
	columnDefs = strings.TrimSpace(columnDefs)
	if columnDefs == "" {
		return "", fmt.Errorf("%w: column definitions", ErrEmptyInput)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", QualifiedName(schema, table), columnDefs), nil
}

// BuildAlterTableSQL produces a terminated ALTER TABLE statement. The clause
// (e.g. `ADD COLUMN "age" integer`) must be non-blank.
func BuildAlterTableSQL(schema, table, clause string) (string, error) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return "", fmt.Errorf("%w: alter clause", ErrEmptyInput)
	}
	return fmt.Sprintf("ALTER TABLE %s %s;", QualifiedName(schema, table), clause), nil
}

// BuildDropTableSQL produces a terminated DROP TABLE statement. CASCADE is
// appended only when explicitly requested.
func BuildDropTableSQL(schema, table string, cascade bool) string {
	stmt := "DROP TABLE " + QualifiedName(schema, table)
	if cascade {
		stmt += " CASCADE"
	}
	return stmt + ";"
}
