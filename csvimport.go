package pgdesk

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ImportCSV parses CSV data into insert changes for schema.table. The first
// record is the header and must name existing columns; every field is
// coerced into its column type via CoerceValue, so the resulting batch can
// run Unvalidated.
func ImportCSV(r io.Reader, schema, table string, cols []ColumnDef) ([]Change, error) {
	byName := make(map[string]ColumnDef, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}

	rd := csv.NewReader(r)
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for _, name := range header {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("header names unknown column %q", name)
		}
	}

	var changes []Change
	line := 1
	for {
		record, err := rd.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// csv.Reader enforces field arity against the header.
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		values := make(map[string]any, len(header))
		for i, name := range header {
			v, err := CoerceValue(record[i], byName[name].Type)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q: %v", line, name, err)
			}
			values[name] = v
		}
		changes = append(changes, Change{
			Kind:   ChangeInsert,
			Schema: schema,
			Table:  table,
			Values: values,
		})
	}
	return changes, nil
}
