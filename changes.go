package pgdesk

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ChangeKind discriminates row-level mutation requests.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// Change is a single row mutation request against a schema-qualified table.
// Values carries new column values (insert/update); Keys identifies the
// target row (update/delete).
type Change struct {
	Kind   ChangeKind     `json:"kind"`
	Schema string         `json:"schema"`
	Table  string         `json:"table"`
	Values map[string]any `json:"values,omitempty"`
	Keys   map[string]any `json:"keys,omitempty"`
}

// ExecutionMode selects whether a batch is checked against the table schema
// before touching the database.
type ExecutionMode string

const (
	// Validated runs the schema validator first; any violation aborts the
	// batch before a single statement reaches the client.
	Validated ExecutionMode = "validated"

	// Unvalidated skips the validator entirely. Escape hatch for callers
	// who already validated or are intentionally re-submitting raw values.
	Unvalidated ExecutionMode = "unvalidated"
)

// ValidationResult is a list of human-readable violations; empty means the
// batch is accepted.
type ValidationResult []string

// Validator checks a batch of changes against column definitions.
type Validator interface {
	Validate(changes []Change, cols []ColumnDef) ValidationResult
}

// ExecutionOutcome is the aggregate result of one ExecuteChanges call.
type ExecutionOutcome struct {
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
	Violations   []string `json:"violations,omitempty"`
	Applied      int      `json:"applied"`
	RowsAffected int64    `json:"rows_affected"`
}

// Executor turns batches of row changes into executed SQL.
type Executor struct {
	validator Validator
}

// NewExecutor creates an Executor using the given validator for Validated
// batches.
func NewExecutor(v Validator) *Executor {
	return &Executor{validator: v}
}

// ExecuteChanges executes the batch sequentially in input order, one
// parameterized statement per change.
//
// The batch is NOT wrapped in a database transaction: each change is issued
// independently, so a failure partway leaves earlier changes applied. The
// outcome reports how many changes were applied before the failure.
func (e *Executor) ExecuteChanges(db *gorm.DB, changes []Change, mode ExecutionMode, cols []ColumnDef) ExecutionOutcome {
	if mode == Validated {
		if violations := e.validator.Validate(changes, cols); len(violations) > 0 {
			return ExecutionOutcome{
				Error:      "validation rejected",
				Violations: violations,
			}
		}
	}

	out := ExecutionOutcome{}
	for i, c := range changes {
		stmt, args, err := buildChangeSQL(c)
		if err != nil {
			out.Error = fmt.Sprintf("change %d: %v", i+1, err)
			return out
		}
		res := db.Exec(stmt, args...)
		if res.Error != nil {
			out.Error = fmt.Sprintf("change %d: %v", i+1, res.Error)
			return out
		}
		out.Applied++
		out.RowsAffected += res.RowsAffected
	}
	out.Success = true
	return out
}

// buildChangeSQL renders one change as a parameterized statement with quoted
// identifiers. Column order is sorted so output is deterministic.
func buildChangeSQL(c Change) (string, []any, error) {
	if strings.TrimSpace(c.Table) == "" {
		return "", nil, fmt.Errorf("table is required")
	}
	target := QualifiedName(c.Schema, c.Table)

	switch c.Kind {
	case ChangeInsert:
		if len(c.Values) == 0 {
			return "", nil, fmt.Errorf("insert without values")
		}
		names := sortedKeys(c.Values)
		quoted := make([]string, len(names))
		ph := make([]string, len(names))
		args := make([]any, len(names))
		for i, n := range names {
			quoted[i] = QuoteIdentifier(n)
			ph[i] = "?"
			args[i] = c.Values[n]
		}
		stmt := "INSERT INTO " + target + " (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ")"
		return stmt, args, nil

	case ChangeUpdate:
		if len(c.Values) == 0 {
			return "", nil, fmt.Errorf("update without values")
		}
		if len(c.Keys) == 0 {
			return "", nil, fmt.Errorf("refusing update without key columns")
		}
		names := sortedKeys(c.Values)
		sets := make([]string, len(names))
		args := make([]any, 0, len(names)+len(c.Keys))
		for i, n := range names {
			sets[i] = QuoteIdentifier(n) + " = ?"
			args = append(args, c.Values[n])
		}
		where, whereArgs := buildWhere(c.Keys)
		args = append(args, whereArgs...)
		stmt := "UPDATE " + target + " SET " + strings.Join(sets, ", ") + " WHERE " + where
		return stmt, args, nil

	case ChangeDelete:
		if len(c.Keys) == 0 {
			return "", nil, fmt.Errorf("refusing delete without key columns")
		}
		where, args := buildWhere(c.Keys)
		stmt := "DELETE FROM " + target + " WHERE " + where
		return stmt, args, nil

	default:
		return "", nil, fmt.Errorf("unknown change kind: %s", c.Kind)
	}
}

func buildWhere(keys map[string]any) (string, []any) {
	names := sortedKeys(keys)
	clauses := make([]string, len(names))
	args := make([]any, 0, len(names))
	for i, n := range names {
		if keys[n] == nil {
			clauses[i] = QuoteIdentifier(n) + " IS NULL"
			continue
		}
		clauses[i] = QuoteIdentifier(n) + " = ?"
		args = append(args, keys[n])
	}
	return strings.Join(clauses, " AND "), args
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
