package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"followup-report/internal/excel"
	"followup-report/internal/models"
)

func testOptions() models.ReportOptions {
	return models.ReportOptions{}.WithDefaults()
}

func testTable(rows ...map[string]string) *excel.Table {
	columns := []string{
		models.AssigneeColumn,
		models.StateColumn,
		models.DefaultPriorityColumn,
		"Intitulé de l'action",
	}
	table := &excel.Table{Sheet: "Suivi Actions", Columns: columns}
	for _, row := range rows {
		full := make(map[string]string, len(columns))
		for _, col := range columns {
			full[col] = row[col]
		}
		table.Rows = append(table.Rows, full)
	}
	return table
}

func TestPrepareRowsFiltersByState(t *testing.T) {
	table := testTable(
		map[string]string{models.AssigneeColumn: "Viet", models.StateColumn: "En cours", models.DefaultPriorityColumn: "3"},
		map[string]string{models.AssigneeColumn: "Viet", models.StateColumn: "Terminée", models.DefaultPriorityColumn: "1"},
		map[string]string{models.AssigneeColumn: "Maxime", models.StateColumn: "Non démarrée", models.DefaultPriorityColumn: "1"},
	)

	rows, err := NewDataService().PrepareRows(table, testOptions())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Viet", rows[0].Cells[models.AssigneeColumn])
	assert.Equal(t, "Maxime", rows[1].Cells[models.AssigneeColumn])
}

func TestPrepareRowsCustomKeptStates(t *testing.T) {
	table := testTable(
		map[string]string{models.AssigneeColumn: "Viet", models.StateColumn: "Terminée"},
		map[string]string{models.AssigneeColumn: "Maxime", models.StateColumn: "En cours"},
	)

	opts := testOptions()
	opts.KeptStates = []string{"Terminée"}

	rows, err := NewDataService().PrepareRows(table, opts)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Viet", rows[0].Cells[models.AssigneeColumn])
}

func TestPrepareRowsDerivedPriority(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "integer", raw: "3", want: 3},
		{name: "float truncates", raw: "3.7", want: 3},
		{name: "padded", raw: " 5 ", want: 5},
		{name: "unparseable text", raw: "TBD", want: 0},
		{name: "blank", raw: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testTable(map[string]string{
				models.AssigneeColumn:        "Viet",
				models.StateColumn:           "En cours",
				models.DefaultPriorityColumn: tt.raw,
			})

			rows, err := NewDataService().PrepareRows(table, testOptions())
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Priority)
		})
	}
}

func TestPrepareRowsMissingPriorityColumn(t *testing.T) {
	table := testTable(map[string]string{
		models.AssigneeColumn: "Viet",
		models.StateColumn:    "En cours",
	})

	opts := testOptions()
	opts.PriorityColumn = "Urgence"

	_, err := NewDataService().PrepareRows(table, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Urgence"`)
	assert.Contains(t, err.Error(), `"Suivi Actions"`)
}

func TestPrepareRowsMissingStateColumn(t *testing.T) {
	table := &excel.Table{
		Sheet:   "Suivi Actions",
		Columns: []string{models.AssigneeColumn, models.DefaultPriorityColumn},
	}

	_, err := NewDataService().PrepareRows(table, testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), models.StateColumn)
}

func TestPrepareRowsKeepsSourceOrder(t *testing.T) {
	table := testTable(
		map[string]string{models.AssigneeColumn: "A", models.StateColumn: "En cours", "Intitulé de l'action": "first"},
		map[string]string{models.AssigneeColumn: "A", models.StateColumn: "En cours", "Intitulé de l'action": "second"},
		map[string]string{models.AssigneeColumn: "A", models.StateColumn: "En cours", "Intitulé de l'action": "third"},
	)

	rows, err := NewDataService().PrepareRows(table, testOptions())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[0].Cells["Intitulé de l'action"])
	assert.Equal(t, "second", rows[1].Cells["Intitulé de l'action"])
	assert.Equal(t, "third", rows[2].Cells["Intitulé de l'action"])
}
