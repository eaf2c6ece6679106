package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a parsed tabular dataset: one header row plus data rows.
// Rows may be ragged; missing trailing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the value of the named column in the given row, or ""
// when the column is absent or the row is short.
func (t *Table) Cell(row []string, column string) string {
	for i, col := range t.Columns {
		if col == column && i < len(row) {
			return row[i]
		}
	}
	return ""
}

// ReadCSV parses CSV input into a Table. The first record is the
// header; a UTF-8 BOM on the first column is stripped.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\uFEFF")
		}
		columns[i] = strings.TrimSpace(col)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, record)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}
