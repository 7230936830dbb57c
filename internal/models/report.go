package models

import "strings"

// Worksheet column names the transform depends on. The workbook is a
// French production follow-up sheet, so the fixed columns keep their
// original headers.
const (
	AssigneeColumn = "Prise en charge par"
	StateColumn    = "Etat"
	TypeColumn     = "Type (Machine/Humain/Deux)"
)

// Defaults for the configuration surface.
const (
	DefaultSheetName      = "Suivi Actions"
	DefaultSkipRows       = 10
	DefaultPageLength     = 25
	DefaultPriorityColumn = "Priorité"
)

// DefaultKeptStates returns the state values that keep a row in the report.
func DefaultKeptStates() []string {
	return []string{"En cours", "Non démarrée"}
}

// DefaultColumns returns the seven display columns of the follow-up
// sheet, with the configured priority column in fourth position.
func DefaultColumns(priorityColumn string) []string {
	return []string{
		"Bâtiments",
		"Intitulé de l'action",
		"Date souhaitée         (demandeur)",
		priorityColumn,
		"Avancement de l'action (décision, commentaire,…)",
		TypeColumn,
		StateColumn,
	}
}

// ActionRow is one task row of the report: the raw cells keyed by
// column name plus the derived integer priority used for sorting.
type ActionRow struct {
	Cells    map[string]string `json:"cells"`
	Priority int               `json:"priority"`
}

// EngineerSection is the per-engineer unit of the report: either an
// on-leave placeholder or an ordered list of action rows.
type EngineerSection struct {
	Name    string      `json:"name"`
	OnLeave bool        `json:"onLeave"`
	Rows    []ActionRow `json:"rows"`
}

// Anchor returns the name slug used for in-document navigation links.
func (s EngineerSection) Anchor() string {
	return strings.ReplaceAll(s.Name, " ", "_")
}

// Report is the fully grouped and sorted model handed to the renderers.
type Report struct {
	GeneratedAt string            `json:"generatedAt"` // YYYY-MM-DD
	Sections    []EngineerSection `json:"sections"`
}

// ReportOptions is the caller-supplied configuration of a run. Zero
// values mean "use the default"; SkipRows is a pointer because zero
// is a meaningful skip count.
type ReportOptions struct {
	SheetName         string   `json:"sheetName"`
	SkipRows          *int     `json:"skipRows"`
	PreferredOrder    []string `json:"preferredOrder"`
	OnLeave           []string `json:"onLeave"`
	Columns           []string `json:"columns"`
	PriorityColumn    string   `json:"priorityColumn"`
	SortDescending    bool     `json:"sortDescending"`
	PageLength        int      `json:"pageLength"`
	AlphabetizeOthers bool     `json:"alphabetizeOthers"`
	KeptStates        []string `json:"keptStates"`
	Format            string   `json:"format"` // "html" (default) or "pdf"
}

// WithDefaults returns a copy of the options with every unset field
// replaced by its default value.
func (o ReportOptions) WithDefaults() ReportOptions {
	if o.SheetName == "" {
		o.SheetName = DefaultSheetName
	}
	if o.SkipRows == nil {
		skip := DefaultSkipRows
		o.SkipRows = &skip
	}
	if o.PriorityColumn == "" {
		o.PriorityColumn = DefaultPriorityColumn
	}
	if len(o.Columns) == 0 {
		o.Columns = DefaultColumns(o.PriorityColumn)
	}
	if o.PageLength <= 0 {
		o.PageLength = DefaultPageLength
	}
	if len(o.KeptStates) == 0 {
		o.KeptStates = DefaultKeptStates()
	}
	if o.Format == "" {
		o.Format = "html"
	}
	return o
}
