package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"followup-report/internal/models"
)

func newReportService() *ReportService {
	return NewReportService(NewDataService(), NewHTMLService(), NewPDFService())
}

func actionRow(assignee string, priority int, title string) models.ActionRow {
	return models.ActionRow{
		Cells: map[string]string{
			models.AssigneeColumn:  assignee,
			"Intitulé de l'action": title,
		},
		Priority: priority,
	}
}

func sectionNames(sections []models.EngineerSection) []string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
	}
	return names
}

func TestBuildSectionsPreferredOrderFirst(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Nora", 1, ""),
		actionRow("Viet", 2, ""),
		actionRow("Maxime", 3, ""),
	}

	opts := testOptions()
	opts.PreferredOrder = []string{"Viet", "Matthieu", "Maxime"}

	sections := newReportService().buildSections(rows, opts)
	assert.Equal(t, []string{"Viet", "Maxime", "Nora"}, sectionNames(sections))
}

func TestBuildSectionsOthersFirstSeen(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Zoé", 1, ""),
		actionRow("Anna", 2, ""),
	}

	sections := newReportService().buildSections(rows, testOptions())
	assert.Equal(t, []string{"Zoé", "Anna"}, sectionNames(sections))
}

func TestBuildSectionsOthersAlphabetized(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Zoé", 1, ""),
		actionRow("Anna", 2, ""),
		actionRow("Maxime", 3, ""),
	}

	opts := testOptions()
	opts.PreferredOrder = []string{"Maxime"}
	opts.AlphabetizeOthers = true

	sections := newReportService().buildSections(rows, opts)
	assert.Equal(t, []string{"Maxime", "Anna", "Zoé"}, sectionNames(sections))
}

func TestBuildSectionsExcludesBlankAssignee(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("", 1, "unassigned"),
		actionRow("Viet", 2, ""),
	}

	sections := newReportService().buildSections(rows, testOptions())
	assert.Equal(t, []string{"Viet"}, sectionNames(sections))
}

func TestBuildSectionsPrioritySortAscending(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Viet", 5, "a"),
		actionRow("Viet", 1, "b"),
		actionRow("Viet", 3, "c"),
	}

	sections := newReportService().buildSections(rows, testOptions())
	require.Len(t, sections, 1)

	var priorities []int
	for _, row := range sections[0].Rows {
		priorities = append(priorities, row.Priority)
	}
	assert.Equal(t, []int{1, 3, 5}, priorities)
}

func TestBuildSectionsPrioritySortDescending(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Viet", 5, "a"),
		actionRow("Viet", 1, "b"),
		actionRow("Viet", 3, "c"),
	}

	opts := testOptions()
	opts.SortDescending = true

	sections := newReportService().buildSections(rows, opts)
	require.Len(t, sections, 1)

	var priorities []int
	for _, row := range sections[0].Rows {
		priorities = append(priorities, row.Priority)
	}
	assert.Equal(t, []int{5, 3, 1}, priorities)
}

func TestBuildSectionsStableTieBreak(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Viet", 2, "first"),
		actionRow("Viet", 2, "second"),
		actionRow("Viet", 1, "urgent"),
		actionRow("Viet", 2, "third"),
	}

	sections := newReportService().buildSections(rows, testOptions())
	require.Len(t, sections, 1)

	var titles []string
	for _, row := range sections[0].Rows {
		titles = append(titles, row.Cells["Intitulé de l'action"])
	}
	// Equal priorities keep their source order
	assert.Equal(t, []string{"urgent", "first", "second", "third"}, titles)
}

func TestBuildSectionsOnLeaveWinsOverData(t *testing.T) {
	rows := []models.ActionRow{
		actionRow("Samih", 1, "still assigned"),
	}

	opts := testOptions()
	opts.OnLeave = []string{"Samih"}

	sections := newReportService().buildSections(rows, opts)
	require.Len(t, sections, 1)
	assert.True(t, sections[0].OnLeave)
	assert.Empty(t, sections[0].Rows)
}

func TestDefaultOutputPath(t *testing.T) {
	path := DefaultOutputPath(filepath.Join("data", "suivi.xlsm"), "2026-08-29", "html")
	assert.Equal(t, filepath.Join("data", "Tableaux_Suivi_2026-08-29_tous.html"), path)

	path = DefaultOutputPath("suivi.xlsm", "2026-08-29", "pdf")
	assert.Equal(t, filepath.Join(".", "Tableaux_Suivi_2026-08-29_tous.pdf"), path)
}

// writeFollowupWorkbook writes a small follow-up sheet with the header
// on the first row, so tests run with skipRows = 0.
func writeFollowupWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Suivi Actions")
	require.NoError(t, err)

	header := []interface{}{
		"Bâtiments",
		"Intitulé de l'action",
		"Date souhaitée         (demandeur)",
		"Priorité",
		"Avancement de l'action (décision, commentaire,…)",
		"Type (Machine/Humain/Deux)",
		"Etat",
		"Prise en charge par",
	}
	require.NoError(t, f.SetSheetRow("Suivi Actions", "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Suivi Actions", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "suivi.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestGenerateReportEndToEnd(t *testing.T) {
	workbook := writeFollowupWorkbook(t, [][]interface{}{
		{"B1", "Calcul structure", "2026-09-01", "3", "en attente", "Machine", "En cours", "Viet"},
		{"B1", "Action close", "2026-09-01", "1", "", "Humain", "Terminée", "Viet"},
		{"B2", "Relevé terrain", "2026-09-05", "1", "", "Humain", "Non démarrée", "Maxime"},
		{"B2", "Sans porteur", "2026-09-05", "2", "", "Deux", "En cours", ""},
	})

	skip := 0
	request := models.GenerateReportRequest{
		WorkbookPath: workbook,
		OutputPath:   filepath.Join(filepath.Dir(workbook), "out", "report.html"),
		Options: models.ReportOptions{
			SkipRows:       &skip,
			PreferredOrder: []string{"Viet", "Maxime"},
		},
	}

	result, err := newReportService().GenerateReport(request)
	require.NoError(t, err)
	assert.Equal(t, request.OutputPath, result.OutputPath)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Viet", result.Sections[0].Name)
	assert.Equal(t, 1, result.Sections[0].ActionCount)
	assert.Equal(t, "Maxime", result.Sections[1].Name)
	assert.Equal(t, 1, result.Sections[1].ActionCount)

	document, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	content := string(document)

	// The filtered state and the unassigned row are excluded entirely
	assert.NotContains(t, content, "Action close")
	assert.NotContains(t, content, "Sans porteur")

	assert.Less(t,
		strings.Index(content, "<h2 id='Viet'>"),
		strings.Index(content, "<h2 id='Maxime'>"))
}

func TestGenerateReportDeterministic(t *testing.T) {
	workbook := writeFollowupWorkbook(t, [][]interface{}{
		{"B1", "Calcul structure", "2026-09-01", "3", "", "Machine", "En cours", "Viet"},
	})

	skip := 0
	request := models.GenerateReportRequest{
		WorkbookPath: workbook,
		OutputPath:   filepath.Join(filepath.Dir(workbook), "report.html"),
		Options:      models.ReportOptions{SkipRows: &skip},
	}

	service := newReportService()

	_, err := service.GenerateReport(request)
	require.NoError(t, err)
	first, err := os.ReadFile(request.OutputPath)
	require.NoError(t, err)

	_, err = service.GenerateReport(request)
	require.NoError(t, err)
	second, err := os.ReadFile(request.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateReportMissingPriorityColumnWritesNothing(t *testing.T) {
	workbook := writeFollowupWorkbook(t, [][]interface{}{
		{"B1", "Calcul structure", "2026-09-01", "3", "", "Machine", "En cours", "Viet"},
	})

	skip := 0
	output := filepath.Join(filepath.Dir(workbook), "report.html")
	request := models.GenerateReportRequest{
		WorkbookPath: workbook,
		OutputPath:   output,
		Options: models.ReportOptions{
			SkipRows:       &skip,
			PriorityColumn: "Urgence",
		},
	}

	_, err := newReportService().GenerateReport(request)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Urgence"`)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateReportPDF(t *testing.T) {
	workbook := writeFollowupWorkbook(t, [][]interface{}{
		{"B1", "Calcul structure", "2026-09-01", "3", "note", "Machine", "En cours", "Viet"},
	})

	skip := 0
	request := models.GenerateReportRequest{
		WorkbookPath: workbook,
		OutputPath:   filepath.Join(filepath.Dir(workbook), "report.pdf"),
		Options: models.ReportOptions{
			SkipRows: &skip,
			Format:   "pdf",
		},
	}

	result, err := newReportService().GenerateReport(request)
	require.NoError(t, err)

	document, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(document), "%PDF"))
}
