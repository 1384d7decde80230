package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vitalize/club-api/internal/models"
	"github.com/vitalize/club-api/internal/validation"
	"github.com/vitalize/club-api/pkg/export"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

// ExportFormat selects the output encoding for roster and progress exports.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type exportProgressLister interface {
	List(ctx context.Context) ([]models.ProgressDetail, error)
}

// ExportService renders program rosters and progress reports as CSV or PDF.
type ExportService struct {
	programs   programRepository
	enrolments programEnrolmentLister
	progress   exportProgressLister
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(programs programRepository, enrolments programEnrolmentLister, progress exportProgressLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		programs:   programs,
		enrolments: enrolments,
		progress:   progress,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// Roster renders the enrolment roster of one program.
func (s *ExportService) Roster(ctx context.Context, programID string, format ExportFormat) (*ExportFile, error) {
	program, err := s.programs.FindByID(ctx, programID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}
	enrolments, err := s.enrolments.ListByProgram(ctx, programID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program enrolments")
	}

	dataset := export.Dataset{
		Headers: []string{"Gymnast", "Age", "Experience Level", "Enrolled"},
	}
	for _, e := range enrolments {
		dataset.Rows = append(dataset.Rows, []string{
			e.GymnastName,
			strconv.Itoa(e.Age),
			string(e.ExperienceLevel),
			e.EnrolledAt.Format(validation.SessionDateLayout),
		})
	}

	title := fmt.Sprintf("%s roster", program.Name)
	return s.render(dataset, title, "roster", format)
}

// ProgressReport renders every progress record with gymnast and program names.
func (s *ExportService) ProgressReport(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	records, err := s.progress.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list progress records")
	}

	dataset := export.Dataset{
		Headers: []string{"Gymnast", "Program", "Session", "Score", "Notes"},
	}
	for _, r := range records {
		dataset.Rows = append(dataset.Rows, []string{
			r.GymnastName,
			r.ProgramName,
			r.SessionDate.Format(validation.SessionDateLayout),
			strconv.Itoa(r.Score),
			r.Notes,
		})
	}

	return s.render(dataset, "Progress report", "progress", format)
}

func (s *ExportService) render(dataset export.Dataset, title, basename string, format ExportFormat) (*ExportFile, error) {
	switch format {
	case FormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Filename: basename + ".csv", ContentType: "text/csv", Data: data}, nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: basename + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Validation([]string{"Export format must be csv or pdf"})
	}
}
