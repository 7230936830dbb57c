package services

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"followup-report/internal/models"
)

// typeIcons maps the recognized action-type values to their glyph.
// Any other value renders without an icon.
var typeIcons = map[string]string{
	"Machine": "⚙️",
	"Humain":  "👤",
	"Deux":    "🤝",
}

// HTMLService renders a report model to the single HTML document
type HTMLService struct{}

// NewHTMLService creates a new HTML service
func NewHTMLService() *HTMLService {
	return &HTMLService{}
}

// RenderReport builds the complete document: head with the DataTables
// wiring, a table of contents, then one section per engineer. Row
// content is escaped on output; the client-side widget receives the
// page length, the priority column index and the sort direction.
func (s *HTMLService) RenderReport(report *models.Report, opts models.ReportOptions) string {
	var doc bytes.Buffer

	orderDir := "asc"
	if opts.SortDescending {
		orderDir = "desc"
	}
	priorityIndex := 0
	for i, col := range opts.Columns {
		if col == opts.PriorityColumn {
			priorityIndex = i
			break
		}
	}

	doc.WriteString(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Suivi des actions – ` + report.GeneratedAt + `</title>
<link rel="stylesheet" href="https://cdn.datatables.net/1.13.4/css/jquery.dataTables.min.css"/>
<script src="https://code.jquery.com/jquery-3.6.0.min.js"></script>
<script src="https://cdn.datatables.net/1.13.4/js/jquery.dataTables.min.js"></script>
<style>
  body { font-family: Arial, sans-serif; margin:20px; }
  h1, h2 { font-family: Arial, sans-serif; }
  .toc ul {
    display: flex; flex-wrap: wrap; gap: 8px;
    padding: 0; margin: 0 0 30px 0;
  }
  .toc li { list-style: none; }
  .toc a {
    display: block;
    padding: 6px 12px;
    background: #f2f2f2;
    border-radius: 20px;
    text-decoration: none;
    color: #0066cc;
    transition: background 0.2s;
  }
  .toc a:hover { background: #ddeeff; }
  table { table-layout: fixed; width:100%; border-collapse: collapse; margin-bottom:40px; }
  th, td { padding:6px; border:1px solid #ddd; word-wrap: break-word; }
  th { background:#e6e6e6; font-size:14px; text-align:left; }
  td { font-size:12px; text-align:left; white-space: pre-wrap; }
  .en-conge { color:#a00; font-style: italic; margin: 6px 0 16px 0; }
</style>
<script>
$(document).ready(function() {
    $('table.display').each(function() {
      $(this).DataTable({
        paging:      true,
        pageLength:  ` + strconv.Itoa(opts.PageLength) + `,
        ordering:    true,
        order:       [[` + strconv.Itoa(priorityIndex) + `, '` + orderDir + `']],      // tri sur la colonne Priorité
        columnDefs:  [{ targets: ` + strconv.Itoa(priorityIndex) + `, type: 'num' }],
        fixedHeader: true,
        scrollX:     true,
        language:    { url: 'https://cdn.datatables.net/plug-ins/1.13.4/i18n/fr-FR.json' }
      });
    });
});
</script>
</head>
<body>
<h1>Suivi des actions – ` + report.GeneratedAt + `</h1>

<nav class="toc">
  <ul>
`)

	for _, section := range report.Sections {
		fmt.Fprintf(&doc, "    <li><a href='#%s'>%s</a></li>\n", section.Anchor(), section.Name)
	}

	doc.WriteString(`  </ul>
</nav>

<p><strong>Conventions de lecture du tableau :</strong></p>
<ul>
  <li><strong>Actions “Machine”</strong> : Toute action de calcul machine dont les données sont prêtes doit être priorisée, car il s’agit de temps machine et non de temps humain.</li>
</ul>
`)

	for _, section := range report.Sections {
		doc.WriteString("<hr style='margin:40px 0; border:none; border-top:1px solid #ccc;'/>\n")
		fmt.Fprintf(&doc, "<h2 id='%s'>Actions de %s</h2>\n", section.Anchor(), section.Name)

		if section.OnLeave {
			doc.WriteString("<p class='en-conge'>En congé — pas d'actions listées pour cette période.</p>\n")
			continue
		}
		if len(section.Rows) == 0 {
			doc.WriteString("<p class='en-conge'>Aucune action à afficher.</p>\n")
			continue
		}

		doc.WriteString("<table class='display'><thead><tr>\n")
		for _, col := range opts.Columns {
			fmt.Fprintf(&doc, "  <th>%s</th>\n", col)
		}
		doc.WriteString("</tr></thead><tbody>\n")

		for _, row := range section.Rows {
			doc.WriteString("<tr>")
			for _, col := range opts.Columns {
				fmt.Fprintf(&doc, "<td>%s</td>", html.EscapeString(cellValue(row, col, opts.PriorityColumn)))
			}
			doc.WriteString("</tr>\n")
		}

		doc.WriteString("</tbody></table>\n")
	}

	doc.WriteString("</body>\n</html>")

	return doc.String()
}

// cellValue resolves one display cell: the priority column shows the
// derived integer and the type column gets its icon prefix (no icon
// still leaves the leading space).
func cellValue(row models.ActionRow, col, priorityColumn string) string {
	switch col {
	case priorityColumn:
		return strconv.Itoa(row.Priority)
	case models.TypeColumn:
		return typeIcons[row.Cells[col]] + " " + row.Cells[col]
	default:
		return row.Cells[col]
	}
}
