package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"followup-report/internal/excel"
	"followup-report/internal/models"
	"followup-report/internal/utils"
)

// ReportService orchestrates report generation: load, filter, group,
// sort, render, write
type ReportService struct {
	dataService *DataService
	htmlService *HTMLService
	pdfService  *PDFService
}

// NewReportService creates a new report service
func NewReportService(dataService *DataService, htmlService *HTMLService, pdfService *PDFService) *ReportService {
	return &ReportService{
		dataService: dataService,
		htmlService: htmlService,
		pdfService:  pdfService,
	}
}

// BuildReport loads the workbook and produces the grouped and sorted
// report model, dated generatedAt (YYYY-MM-DD).
func (s *ReportService) BuildReport(workbookPath string, opts models.ReportOptions, generatedAt string) (*models.Report, error) {
	opts = opts.WithDefaults()

	table, err := excel.LoadSheet(workbookPath, opts.SheetName, *opts.SkipRows)
	if err != nil {
		return nil, err
	}

	rows, err := s.dataService.PrepareRows(table, opts)
	if err != nil {
		return nil, err
	}

	return &models.Report{
		GeneratedAt: generatedAt,
		Sections:    s.buildSections(rows, opts),
	}, nil
}

// GenerateReport runs the full transform and writes the document.
// Nothing is written when any step fails.
func (s *ReportService) GenerateReport(request models.GenerateReportRequest) (*models.GenerateReportResult, error) {
	opts := request.Options.WithDefaults()
	today := utils.Today()

	report, err := s.BuildReport(request.WorkbookPath, opts, today)
	if err != nil {
		return nil, err
	}

	var document []byte
	switch opts.Format {
	case "html":
		document = []byte(s.htmlService.RenderReport(report, opts))
	case "pdf":
		document, err = s.pdfService.RenderReport(report, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render PDF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported report format %q", opts.Format)
	}

	outputPath := request.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(request.WorkbookPath, today, opts.Format)
	}

	if err := writeDocument(outputPath, document); err != nil {
		return nil, err
	}

	result := &models.GenerateReportResult{
		OutputPath:  outputPath,
		GeneratedAt: today,
	}
	for _, section := range report.Sections {
		result.Sections = append(result.Sections, models.SectionSummary{
			Name:        section.Name,
			OnLeave:     section.OnLeave,
			ActionCount: len(section.Rows),
		})
	}
	return result, nil
}

// buildSections partitions the rows by assignee and orders both the
// sections and the rows within each section.
//
// Engineers absent from the preferred-order list keep their first-seen
// order in the filtered data unless AlphabetizeOthers is set, so that
// part of the section order follows the workbook row order.
func (s *ReportService) buildSections(rows []models.ActionRow, opts models.ReportOptions) []models.EngineerSection {
	onLeave := make(map[string]bool, len(opts.OnLeave))
	for _, name := range opts.OnLeave {
		onLeave[name] = true
	}

	byAssignee := make(map[string][]models.ActionRow)
	var present []string
	for _, row := range rows {
		name := row.Cells[models.AssigneeColumn]
		if name == "" {
			continue
		}
		if _, seen := byAssignee[name]; !seen {
			present = append(present, name)
		}
		byAssignee[name] = append(byAssignee[name], row)
	}

	sections := make([]models.EngineerSection, 0, len(present))
	for _, name := range sectionOrder(present, opts.PreferredOrder, opts.AlphabetizeOthers) {
		if onLeave[name] {
			// Leave wins over data: no table even when rows exist.
			sections = append(sections, models.EngineerSection{Name: name, OnLeave: true})
			continue
		}

		group := byAssignee[name]
		sort.SliceStable(group, func(i, j int) bool {
			if opts.SortDescending {
				return group[i].Priority > group[j].Priority
			}
			return group[i].Priority < group[j].Priority
		})
		sections = append(sections, models.EngineerSection{Name: name, Rows: group})
	}

	return sections
}

// sectionOrder returns the preferred names that are present in the
// data, in the list's order, followed by the remaining present names.
func sectionOrder(present, preferred []string, alphabetizeOthers bool) []string {
	inData := make(map[string]bool, len(present))
	for _, name := range present {
		inData[name] = true
	}
	listed := make(map[string]bool, len(preferred))

	var ordered []string
	for _, name := range preferred {
		listed[name] = true
		if inData[name] {
			ordered = append(ordered, name)
		}
	}

	var others []string
	for _, name := range present {
		if !listed[name] {
			others = append(others, name)
		}
	}
	if alphabetizeOthers {
		sort.Strings(others)
	}

	return append(ordered, others...)
}

// DefaultOutputPath returns the default destination beside the
// workbook, embedding the generation date.
func DefaultOutputPath(workbookPath, date, format string) string {
	dir := filepath.Dir(workbookPath)
	if dir == "" {
		dir = "."
	}
	ext := "html"
	if format == "pdf" {
		ext = "pdf"
	}
	return filepath.Join(dir, fmt.Sprintf("Tableaux_Suivi_%s_tous.%s", date, ext))
}

// writeDocument creates the parent directory if needed and writes the
// document, overwriting any existing file.
func writeDocument(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
