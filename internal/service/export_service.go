package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/myclassroom/assessment-api/internal/models"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
	"github.com/myclassroom/assessment-api/pkg/export"
)

type recapLister interface {
	ListForRecap(ctx context.Context, className string) ([]models.StudentAssessment, error)
}

// ExportFormat identifies a supported recap output format.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult bundles rendered bytes with their HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the weekly assessment recap as CSV or PDF, mirroring
// the dashboard's recap table.
type ExportService struct {
	repo   recapLister
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(repo recapLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		repo:   repo,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

var recapColumns = []export.Column{
	{Header: "Nama Siswa"},
	{Header: "Kelas"},
	{Header: "Minggu", Numeric: true},
	{Header: "Pertemuan 1", Numeric: true},
	{Header: "Pertemuan 2", Numeric: true},
	{Header: "Pertemuan 3", Numeric: true},
	{Header: "Total Mingguan", Numeric: true},
	{Header: "Rata-rata", Numeric: true},
	{Header: "Kategori"},
}

// RecapTitle names the rendered document.
const RecapTitle = "Rekap Penilaian Siswa"

// Recap renders the recap for one class (or every class when className is
// empty) in the requested format.
func (s *ExportService) Recap(ctx context.Context, className string, format ExportFormat) (*ExportResult, error) {
	assessments, err := s.repo.ListForRecap(ctx, className)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal membuat rekap penilaian")
	}

	table := buildRecapTable(assessments)

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal membuat rekap penilaian")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "rekap-penilaian.csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(table, RecapTitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal membuat rekap penilaian")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "rekap-penilaian.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "Format export tidak valid")
	}
}

// buildRecapTable flattens assessments into recap rows in column order:
// identity, week, the three meeting totals, then the derived aggregates.
func buildRecapTable(assessments []models.StudentAssessment) export.Table {
	rows := make([][]string, 0, len(assessments))
	for _, a := range assessments {
		rows = append(rows, []string{
			a.StudentName,
			a.ClassName,
			strconv.Itoa(a.WeekNumber),
			strconv.Itoa(a.Meeting1Total),
			strconv.Itoa(a.Meeting2Total),
			strconv.Itoa(a.Meeting3Total),
			strconv.Itoa(a.TotalWeekly),
			fmt.Sprintf("%.2f", a.Average),
			a.Category,
		})
	}
	return export.Table{Columns: recapColumns, Rows: rows}
}
