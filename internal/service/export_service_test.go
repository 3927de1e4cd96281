package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myclassroom/assessment-api/internal/models"
)

type mockRecapLister struct {
	items     []models.StudentAssessment
	className string
}

func (m *mockRecapLister) ListForRecap(ctx context.Context, className string) ([]models.StudentAssessment, error) {
	m.className = className
	return m.items, nil
}

func TestExportServiceRecapCSV(t *testing.T) {
	notes := "Perkembangan baik"
	lister := &mockRecapLister{items: []models.StudentAssessment{
		{
			StudentName: "Ahmad Rizki", ClassName: "3A", WeekNumber: 2,
			Meeting1Total: 20, Meeting2Total: 22, Meeting3Total: 23,
			TotalWeekly: 65, Average: 21.67, Category: "Sangat Baik",
			ProgressNotes: &notes,
		},
	}}
	svc := NewExportService(lister, zap.NewNop())

	result, err := svc.Recap(context.Background(), "3A", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "3A", lister.className)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "rekap-penilaian.csv", result.Filename)

	records, err := csv.NewReader(bytes.NewReader(result.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"Nama Siswa", "Kelas", "Minggu",
		"Pertemuan 1", "Pertemuan 2", "Pertemuan 3",
		"Total Mingguan", "Rata-rata", "Kategori",
	}, records[0])
	assert.Equal(t, []string{"Ahmad Rizki", "3A", "2", "20", "22", "23", "65", "21.67", "Sangat Baik"}, records[1])
}

func TestExportServiceRecapPDF(t *testing.T) {
	lister := &mockRecapLister{items: []models.StudentAssessment{
		{StudentName: "Siti Nurhaliza", ClassName: "4B", WeekNumber: 1, TotalWeekly: 70, Average: 23.33, Category: "Sangat Baik"},
	}}
	svc := NewExportService(lister, zap.NewNop())

	result, err := svc.Recap(context.Background(), "", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF")))
}

func TestExportServiceRecapInvalidFormat(t *testing.T) {
	svc := NewExportService(&mockRecapLister{}, zap.NewNop())

	_, err := svc.Recap(context.Background(), "", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
}
