package pgdesk

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ColumnDef describes one column of a target table, as read from
// information_schema.
type ColumnDef struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// SchemaValidator checks change batches against column definitions and
// reports human-readable violations.
type SchemaValidator struct{}

// Validate returns one violation string per problem found across the batch.
// String values are checked for coercibility into the column type; non-string
// values are accepted as already typed by the caller.
func (SchemaValidator) Validate(changes []Change, cols []ColumnDef) ValidationResult {
	byName := make(map[string]ColumnDef, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}

	var out ValidationResult
	for i, ch := range changes {
		for _, name := range sortedKeys(ch.Values) {
			col, ok := byName[name]
			if !ok {
				out = append(out, fmt.Sprintf("change %d: unknown column %q", i+1, name))
				continue
			}
			v := ch.Values[name]
			if v == nil {
				if !col.Nullable {
					out = append(out, fmt.Sprintf("change %d: column %q is not nullable", i+1, name))
				}
				continue
			}
			if s, ok := v.(string); ok {
				if _, err := CoerceValue(s, col.Type); err != nil {
					out = append(out, fmt.Sprintf("change %d: column %q: %v", i+1, name, err))
				}
			}
		}
		for _, name := range sortedKeys(ch.Keys) {
			if _, ok := byName[name]; !ok {
				out = append(out, fmt.Sprintf("change %d: unknown key column %q", i+1, name))
			}
		}
	}
	return out
}

// CoerceValue converts a raw string into a value suitable for the given
// PostgreSQL column type. An empty string coerces to nil (SQL NULL).
// Unrecognized types pass the raw string through unchanged.
func CoerceValue(raw, colType string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	switch normalizeType(colType) {
	case "smallint", "integer", "bigint":
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid integer", raw)
		}
		return n, nil
	case "numeric", "real", "double precision":
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid number", raw)
		}
		return f, nil
	case "boolean":
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid boolean", raw)
		}
		return b, nil
	case "date":
		t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid date (want YYYY-MM-DD)", raw)
		}
		return t, nil
	case "timestamp":
		s := strings.TrimSpace(raw)
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		t, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid timestamp", raw)
		}
		return t, nil
	case "uuid":
		u, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid uuid", raw)
		}
		return u.String(), nil
	case "json":
		if !json.Valid([]byte(raw)) {
			return nil, fmt.Errorf("%q is not valid json", raw)
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// normalizeType folds type aliases and length suffixes into a canonical name.
func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch t {
	case "int", "int2", "int4", "smallserial", "serial":
		return "integer"
	case "int8", "bigserial":
		return "bigint"
	case "decimal":
		return "numeric"
	case "float4":
		return "real"
	case "float8":
		return "double precision"
	case "bool":
		return "boolean"
	case "jsonb":
		return "json"
	case "timestamptz", "timestamp without time zone", "timestamp with time zone":
		return "timestamp"
	default:
		return t
	}
}
