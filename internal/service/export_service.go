package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
	"github.com/noah-isme/tutorbot-admin/pkg/export"
)

// ExportRequest selects the encoding and, for paginated listings, the page.
type ExportRequest struct {
	Format string `validate:"required,oneof=csv pdf xlsx"`
	Page   int    `validate:"omitempty,min=1"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type studentLister interface {
	List(ctx context.Context, req PageRequest) dto.Page[dto.StudentListItem]
}

type progressReporter interface {
	FullReport(ctx context.Context) dto.ProgressReport
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

// ExportService renders aggregation output as downloadable files.
type ExportService struct {
	students  studentLister
	progress  progressReporter
	csv       csvRenderer
	pdf       pdfRenderer
	xlsx      xlsxRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Students  studentLister
	Progress  progressReporter
	CSV       csvRenderer
	PDF       pdfRenderer
	XLSX      xlsxRenderer
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	svc := &ExportService{
		students:  params.Students,
		progress:  params.Progress,
		csv:       params.CSV,
		pdf:       params.PDF,
		xlsx:      params.XLSX,
		validator: params.Validator,
		logger:    params.Logger,
		now:       time.Now,
	}
	if svc.csv == nil {
		svc.csv = export.NewCSVExporter()
	}
	if svc.pdf == nil {
		svc.pdf = export.NewPDFExporter()
	}
	if svc.xlsx == nil {
		svc.xlsx = export.NewXLSXExporter()
	}
	if svc.validator == nil {
		svc.validator = validator.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

var progressHeaders = []string{"id", "tgid", "first_name", "last_name", "group", "is_active", "completed_topics", "total_topics", "practice_score_avg", "test_score_avg", "average_score"}

var studentHeaders = []string{"id", "tgid", "first_name", "last_name", "group", "topics_count", "is_active", "created_at"}

// Progress exports every student of the progress report.
func (s *ExportService) Progress(ctx context.Context, req ExportRequest) (*ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	report := s.progress.FullReport(ctx)

	dataset := export.Dataset{Headers: progressHeaders, Rows: make([]map[string]string, 0, len(report.Students))}
	for _, student := range report.Students {
		tgid := ""
		if student.TGID != nil {
			tgid = strconv.FormatInt(*student.TGID, 10)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"id":                 strconv.FormatInt(student.ID, 10),
			"tgid":               tgid,
			"first_name":         student.FirstName,
			"last_name":          student.LastName,
			"group":              student.Group,
			"is_active":          strconv.FormatBool(student.IsActive),
			"completed_topics":   strconv.Itoa(student.CompletedTopics),
			"total_topics":       strconv.Itoa(student.TotalTopics),
			"practice_score_avg": formatScore(student.PracticeScoreAvg),
			"test_score_avg":     formatScore(student.TestScoreAvg),
			"average_score":      formatScore(student.AverageScore),
		})
	}

	return s.render(export.Format(req.Format), dataset, "progress", "Student progress")
}

// Students exports one page of the student listing.
func (s *ExportService) Students(ctx context.Context, req ExportRequest) (*ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	page := s.students.List(ctx, PageRequest{Page: req.Page})

	dataset := export.Dataset{Headers: studentHeaders, Rows: make([]map[string]string, 0, len(page.Data))}
	for _, student := range page.Data {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"id":           strconv.FormatInt(student.ID, 10),
			"tgid":         strconv.FormatInt(student.TGID, 10),
			"first_name":   student.FirstName,
			"last_name":    student.LastName,
			"group":        student.Group,
			"topics_count": strconv.Itoa(student.TopicsCount),
			"is_active":    strconv.FormatBool(student.IsActive),
			"created_at":   student.CreatedAt,
		})
	}

	return s.render(export.Format(req.Format), dataset, fmt.Sprintf("students_page%d", page.Page), "Students")
}

func (s *ExportService) render(format export.Format, dataset export.Dataset, name, title string) (*ExportFile, error) {
	var (
		payload []byte
		err     error
	)
	switch format {
	case export.FormatCSV:
		payload, err = s.csv.Render(dataset)
	case export.FormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	case export.FormatXLSX:
		payload, err = s.xlsx.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("export", name), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", name, s.now().UTC().Format("20060102_150405"), format),
		ContentType: format.ContentType(),
		Content:     payload,
	}, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
