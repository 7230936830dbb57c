package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"followup-report/internal/config"
	"followup-report/internal/models"
)

// WeeklyReportService runs the report generation on a cron schedule
// and optionally mails the result
type WeeklyReportService struct {
	reportService *ReportService
	emailService  *EmailService
	reportConfig  config.ReportConfig
	recipients    []string
	cron          *cron.Cron
}

// NewWeeklyReportService creates a new weekly report service. The
// email service may be nil, in which case the run only writes the file.
func NewWeeklyReportService(
	reportService *ReportService,
	emailService *EmailService,
	reportConfig config.ReportConfig,
	recipients []string,
) *WeeklyReportService {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &WeeklyReportService{
		reportService: reportService,
		emailService:  emailService,
		reportConfig:  reportConfig,
		recipients:    recipients,
		cron:          c,
	}
}

// Start starts the cron scheduler
func (s *WeeklyReportService) Start() {
	s.cron.Start()
	log.Println("Weekly report cron scheduler started")
}

// Stop stops the cron scheduler
func (s *WeeklyReportService) Stop() {
	s.cron.Stop()
	log.Println("Weekly report cron scheduler stopped")
}

// Schedule registers the weekly run with the given cron expression
// (seconds-precision format)
func (s *WeeklyReportService) Schedule(schedule string) (cron.EntryID, error) {
	entryID, err := s.cron.AddFunc(schedule, s.RunOnce)
	if err != nil {
		return 0, fmt.Errorf("failed to schedule weekly report: %w", err)
	}

	log.Printf("Scheduled weekly report for workbook %s with schedule: %s", s.reportConfig.WorkbookPath, schedule)
	return entryID, nil
}

// RunOnce generates the report from the configured workbook and mails
// it when email delivery is configured
func (s *WeeklyReportService) RunOnce() {
	log.Printf("Generating weekly report from %s", s.reportConfig.WorkbookPath)

	request := requestFromConfig(s.reportConfig)

	result, err := s.reportService.GenerateReport(request)
	if err != nil {
		log.Printf("ERROR: Failed to generate weekly report: %v", err)
		return
	}

	log.Printf("Weekly report written to %s (%d sections)", result.OutputPath, len(result.Sections))

	if s.emailService == nil || len(s.recipients) == 0 {
		return
	}

	document, err := os.ReadFile(result.OutputPath)
	if err != nil {
		log.Printf("ERROR: Failed to read generated report for email: %v", err)
		return
	}

	if err := s.emailService.SendReportEmail(s.recipients, result, document, filepath.Base(result.OutputPath)); err != nil {
		log.Printf("ERROR: Failed to send weekly report email: %v", err)
		return
	}

	log.Printf("Successfully sent weekly report email to %d recipient(s)", len(s.recipients))
}

// requestFromConfig maps the configured defaults to a generation request
func requestFromConfig(cfg config.ReportConfig) models.GenerateReportRequest {
	skip := cfg.SkipRows
	return models.GenerateReportRequest{
		WorkbookPath: cfg.WorkbookPath,
		OutputPath:   cfg.OutputPath,
		Options: models.ReportOptions{
			SheetName:         cfg.SheetName,
			SkipRows:          &skip,
			PreferredOrder:    cfg.PreferredOrder,
			OnLeave:           cfg.OnLeave,
			PriorityColumn:    cfg.PriorityColumn,
			SortDescending:    cfg.SortDescending,
			PageLength:        cfg.PageLength,
			AlphabetizeOthers: cfg.AlphabetizeOthers,
			KeptStates:        cfg.KeptStates,
		},
	}
}
