package services

import (
	"fmt"
	"strconv"
	"strings"

	"followup-report/internal/excel"
	"followup-report/internal/models"
)

// DataService turns the raw worksheet table into normalized action rows
type DataService struct{}

// NewDataService creates a new data service
func NewDataService() *DataService {
	return &DataService{}
}

// PrepareRows filters the table down to rows whose state is in the
// kept-state list and normalizes every kept row: missing cells become
// empty strings and the configured priority column is coerced to an
// integer. Source order is preserved.
//
// The state and assignee columns must exist in the sheet; the priority
// column is the one explicit configuration check and fails with an
// error naming the column and the sheet.
func (s *DataService) PrepareRows(table *excel.Table, opts models.ReportOptions) ([]models.ActionRow, error) {
	if !table.HasColumn(models.StateColumn) {
		return nil, fmt.Errorf("column %q not found in sheet %q", models.StateColumn, table.Sheet)
	}
	if !table.HasColumn(models.AssigneeColumn) {
		return nil, fmt.Errorf("column %q not found in sheet %q", models.AssigneeColumn, table.Sheet)
	}
	if !table.HasColumn(opts.PriorityColumn) {
		return nil, fmt.Errorf("priority column %q not found in sheet %q", opts.PriorityColumn, table.Sheet)
	}

	kept := make(map[string]bool, len(opts.KeptStates))
	for _, state := range opts.KeptStates {
		kept[state] = true
	}

	var rows []models.ActionRow
	for _, raw := range table.Rows {
		if !kept[raw[models.StateColumn]] {
			continue
		}

		cells := make(map[string]string, len(table.Columns))
		for _, col := range table.Columns {
			cells[col] = raw[col]
		}

		rows = append(rows, models.ActionRow{
			Cells:    cells,
			Priority: derivePriority(raw[opts.PriorityColumn]),
		})
	}

	return rows, nil
}

// derivePriority coerces a raw priority cell to an integer: numeric
// values are truncated, anything unparseable (including blank) is 0.
func derivePriority(raw string) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return int(value)
}
