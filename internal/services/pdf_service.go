package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"followup-report/internal/models"
)

// PDFService renders a report model to a PDF document
type PDFService struct{}

// NewPDFService creates a new PDF service
func NewPDFService() *PDFService {
	return &PDFService{}
}

// RenderReport generates a PDF edition of the report: a title page
// followed by one block per engineer section with the same leave and
// empty-section placeholders as the HTML document.
func (s *PDFService) RenderReport(report *models.Report, opts models.ReportOptions) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("invalid report data")
	}

	// Create PDF document (A4, portrait)
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)

	// Core fonts are cp1252, so accented headers go through the translator
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Set total page count alias for footer
	pdf.AliasNbPages("{nb}")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(108, 117, 125) // Gray
		pdf.SetX(15)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 102, 204) // Blue
	pdf.CellFormat(0, 20, tr("Suivi des actions"), "", 0, "C", false, 0, "")

	pdf.Ln(15)
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(108, 117, 125) // Gray
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Généré le %s", report.GeneratedAt)), "", 0, "C", false, 0, "")
	pdf.Ln(15)

	for _, section := range report.Sections {
		s.addSectionHeader(pdf, tr(fmt.Sprintf("Actions de %s", section.Name)))

		if section.OnLeave {
			s.addPlaceholder(pdf, tr("En congé — pas d'actions listées pour cette période."))
			continue
		}
		if len(section.Rows) == 0 {
			s.addPlaceholder(pdf, tr("Aucune action à afficher."))
			continue
		}

		for _, row := range section.Rows {
			s.addActionRow(pdf, tr, row)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// addSectionHeader adds an engineer heading with the underline rule
func (s *PDFService) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41) // Dark gray
	pdf.CellFormat(0, 10, title, "", 0, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 102, 204) // Blue
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)
}

// addPlaceholder adds the leave / no-actions note
func (s *PDFService) addPlaceholder(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(170, 0, 0)
	pdf.CellFormat(0, 8, text, "", 0, "L", false, 0, "")
	pdf.Ln(10)
}

// addActionRow adds one action line plus its progress note
func (s *PDFService) addActionRow(pdf *gofpdf.Fpdf, tr func(string) string, row models.ActionRow) {
	title := row.Cells["Intitulé de l'action"]
	state := row.Cells[models.StateColumn]

	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(33, 37, 41)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("P%d — %s (%s)", row.Priority, title, state)), "", "L", false)

	if note := row.Cells["Avancement de l'action (décision, commentaire,…)"]; note != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(108, 117, 125)
		pdf.MultiCell(0, 5, tr(note), "", "L", false)
	}
	pdf.Ln(2)
}
