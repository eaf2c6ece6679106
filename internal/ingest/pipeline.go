// Package ingest normalizes heterogeneous bid spreadsheets into
// canonical records. Malformed cells degrade to null; a malformed
// schema (missing required columns) aborts the whole batch.
package ingest

import (
	"fmt"
	"strings"
)

// Record is one canonical bid row. Values are string, float64 or nil,
// so a Record marshals to JSON with explicit nulls.
type Record map[string]any

// SchemaError reports that required canonical columns never existed in
// the uploaded table. It is batch-fatal and raised before any row is
// processed.
type SchemaError struct {
	MissingFields  []string // canonical names
	MissingHeaders []string // the spreadsheet headers that map to them
	Columns        []string // columns actually present in the upload
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"required columns missing: %s (expected spreadsheet headers: %s; got columns: %s)",
		strings.Join(e.MissingFields, ", "),
		strings.Join(e.MissingHeaders, ", "),
		strings.Join(e.Columns, ", "),
	)
}

// Process remaps the table's headers to canonical names, validates the
// schema, normalizes date and numeric cells, and projects the rows into
// canonical records. Returns *SchemaError when title or bid_number
// columns are absent.
func Process(t *Table) ([]Record, error) {
	canonical := remapColumns(t.Columns)

	if err := checkSchema(canonical, t.Columns); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, projectRow(canonical, row))
	}
	return records, nil
}

// remapColumns maps each source column index to its canonical name.
// Ignored and unmapped columns get "".
func remapColumns(columns []string) []string {
	byHeader := make(map[string]string, len(columnMapping))
	for _, m := range columnMapping {
		byHeader[m.Header] = m.Canonical
	}

	canonical := make([]string, len(columns))
	for i, col := range columns {
		canonical[i] = byHeader[col]
	}
	return canonical
}

func checkSchema(canonical, columns []string) error {
	present := make(map[string]bool, len(canonical))
	for _, name := range canonical {
		if name != "" {
			present[name] = true
		}
	}

	var missing, missingHeaders []string
	for _, field := range requiredFields {
		if !present[field] {
			missing = append(missing, field)
			missingHeaders = append(missingHeaders, headerFor(field))
		}
	}
	if len(missing) > 0 {
		return &SchemaError{
			MissingFields:  missing,
			MissingHeaders: missingHeaders,
			Columns:        columns,
		}
	}
	return nil
}

// projectRow emits only canonical-named columns, in mapping declaration
// order, with date and numeric cells normalized.
func projectRow(canonical []string, row []string) Record {
	cells := make(map[string]string, len(canonical))
	for i, name := range canonical {
		if name == "" || i >= len(row) {
			continue
		}
		cells[name] = row[i]
	}

	rec := make(Record, len(cells))
	for _, m := range columnMapping {
		if m.Canonical == "" {
			continue
		}
		cell, ok := cells[m.Canonical]
		if !ok {
			continue
		}

		switch {
		case dateFields[m.Canonical]:
			if iso := NormalizeDate(cell); iso != nil {
				rec[m.Canonical] = *iso
			} else {
				rec[m.Canonical] = nil
			}
		case numericFields[m.Canonical]:
			if f := NormalizeNumeric(cell); f != nil {
				rec[m.Canonical] = *f
			} else {
				rec[m.Canonical] = nil
			}
		default:
			s := strings.TrimSpace(cell)
			if s == "" {
				rec[m.Canonical] = nil
			} else {
				rec[m.Canonical] = s
			}
		}
	}
	return rec
}

// StringField returns the named field as a trimmed string, "" when the
// field is absent or null.
func (r Record) StringField(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// FloatField returns the named field as a float pointer, nil when
// absent or null.
func (r Record) FloatField(name string) *float64 {
	v, ok := r[name]
	if !ok || v == nil {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
