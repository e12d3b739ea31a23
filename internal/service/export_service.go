package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/pkg/export"
	"github.com/noah-isme/fms-api/pkg/storage"
)

type exportRequestSource interface {
	List(ctx context.Context, filter models.WorkRequestFilter) ([]models.WorkRequest, int, error)
}

type exportAccomplishmentSource interface {
	List(ctx context.Context, requestID string, page, pageSize int) ([]models.AccomplishmentReport, int, error)
}

type exportFeedbackSource interface {
	List(ctx context.Context, requestID string, page, pageSize int) ([]models.Feedback, int, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	PageSize  int
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService builds report datasets and persists rendered files.
type ExportService struct {
	requests        exportRequestSource
	accomplishments exportAccomplishmentSource
	feedback        exportFeedbackSource
	storage         fileStorage
	csv             csvRenderer
	pdf             pdfRenderer
	signer          *storage.SignedURLSigner
	logger          *zap.Logger
	cfg             ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(requests exportRequestSource, accomplishments exportAccomplishmentSource, feedback exportFeedbackSource, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		requests:        requests,
		accomplishments: accomplishments,
		feedback:        feedback,
		storage:         store,
		csv:             csv,
		pdf:             pdf,
		signer:          signer,
		logger:          logger,
		cfg:             cfg,
	}
}

// Generate builds the dataset for a job and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	signedURL := strings.TrimRight(s.cfg.APIPrefix, "/")
	if signedURL == "" {
		signedURL = "/api/v1"
	}
	signedURL = fmt.Sprintf("%s/export/%s", signedURL, token)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          signedURL,
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to the configured
// ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ReportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	yearPart := sanitizeFilename(job.Params.FiscalYear)
	return fmt.Sprintf("%s_%s_%s.%s", strings.ToLower(string(job.Type)), yearPart, timestamp, job.Params.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeRequests:
		return s.buildRequestDataset(ctx, job.Params)
	case models.ReportTypeAccomplishments:
		return s.buildAccomplishmentDataset(ctx, job.Params)
	case models.ReportTypeFeedback:
		return s.buildFeedbackDataset(ctx, job.Params)
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported report type %s", job.Type)
	}
}

func (s *ExportService) buildRequestDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	filter := models.WorkRequestFilter{
		FiscalYear: params.FiscalYear,
		Status:     deref(params.Status),
		SortBy:     "control_no",
		SortOrder:  "ASC",
		PageSize:   s.cfg.PageSize,
	}

	dataRows := make([]map[string]string, 0)
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := s.requests.List(ctx, filter)
		if err != nil {
			return export.Dataset{}, "", err
		}
		for _, row := range rows {
			dataRows = append(dataRows, map[string]string{
				"Control No":  row.ControlNo,
				"Description": row.Description,
				"Office":      row.OfficeName,
				"Location":    row.LocationName,
				"Category":    row.CategoryName,
				"Status":      string(row.Status),
				"Overtime":    strconv.FormatBool(row.Overtime),
				"Created At":  row.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		if len(dataRows) >= total || len(rows) == 0 {
			break
		}
	}

	dataset := export.Dataset{
		Headers: []string{"Control No", "Description", "Office", "Location", "Category", "Status", "Overtime", "Created At"},
		Rows:    dataRows,
	}
	title := fmt.Sprintf("Work Requests %s", params.FiscalYear)
	return dataset, title, nil
}

func (s *ExportService) buildAccomplishmentDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	dataRows := make([]map[string]string, 0)
	for page := 1; ; page++ {
		rows, total, err := s.accomplishments.List(ctx, "", page, s.cfg.PageSize)
		if err != nil {
			return export.Dataset{}, "", err
		}
		for _, row := range rows {
			dataRows = append(dataRows, map[string]string{
				"Request ID":     row.RequestID,
				"Description":    row.Description,
				"Date Started":   formatReportTime(row.DateStarted),
				"Date Completed": formatReportTime(row.DateCompleted),
				"Status":         string(row.Status),
				"Remarks":        row.Remarks,
			})
		}
		if len(dataRows) >= total || len(rows) == 0 {
			break
		}
	}

	dataset := export.Dataset{
		Headers: []string{"Request ID", "Description", "Date Started", "Date Completed", "Status", "Remarks"},
		Rows:    dataRows,
	}
	title := fmt.Sprintf("Accomplishment Reports %s", params.FiscalYear)
	return dataset, title, nil
}

func (s *ExportService) buildFeedbackDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	dataRows := make([]map[string]string, 0)
	for page := 1; ; page++ {
		rows, total, err := s.feedback.List(ctx, "", page, s.cfg.PageSize)
		if err != nil {
			return export.Dataset{}, "", err
		}
		for _, row := range rows {
			dataRows = append(dataRows, map[string]string{
				"Request ID":     row.RequestID,
				"Rating":         row.Rating,
				"Final Remarks":  row.FinalRemarks,
				"Feedback":       row.Feedback,
				"Date Completed": formatReportTime(row.DateCompleted),
			})
		}
		if len(dataRows) >= total || len(rows) == 0 {
			break
		}
	}

	dataset := export.Dataset{
		Headers: []string{"Request ID", "Rating", "Final Remarks", "Feedback", "Date Completed"},
		Rows:    dataRows,
	}
	title := fmt.Sprintf("Feedback Report %s", params.FiscalYear)
	return dataset, title, nil
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func formatReportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
