package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Columns: []Column{
			{Header: "Nama Siswa"},
			{Header: "Total Mingguan", Numeric: true},
		},
		Rows: [][]string{{"Ahmad Rizki", "65"}},
	}
}

func TestCSVExporterRender(t *testing.T) {
	content, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Nama Siswa", "Total Mingguan"}, records[0])
	assert.Equal(t, []string{"Ahmad Rizki", "65"}, records[1])
}

func TestCSVExporterRejectsRaggedRow(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"Siti Nurhaliza"})

	_, err := NewCSVExporter().Render(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestCSVExporterRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	content, err := NewPDFExporter().Render(sampleTable(), "Rekap Penilaian Siswa")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestPDFExporterRejectsRaggedRow(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"Siti Nurhaliza", "70", "extra"})

	_, err := NewPDFExporter().Render(table, "")
	require.Error(t, err)
}
