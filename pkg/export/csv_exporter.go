package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Column describes one recap column. Numeric columns are right-aligned in
// the PDF rendering; CSV output ignores the flag.
type Column struct {
	Header  string
	Numeric bool
}

// Table is an ordered, render-ready recap: fixed columns plus positional
// string cells. Every row must carry exactly one cell per column.
type Table struct {
	Columns []Column
	Rows    [][]string
}

func (t Table) headers() []string {
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}
	return headers
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("recap table has no columns")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("recap row %d has %d cells, want %d", i+1, len(row), len(t.Columns))
		}
	}
	return nil
}

// CSVExporter renders a recap table as CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes the header row followed by every data row.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.headers()); err != nil {
		return nil, fmt.Errorf("write recap headers: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("write recap rows: %w", err)
	}
	return buf.Bytes(), nil
}
