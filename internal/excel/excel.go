package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Table is an ordered view of one worksheet: a header of column names
// and one map per data row. Cells missing from short rows are present
// in the maps as empty strings.
type Table struct {
	Sheet   string
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the sheet header contains the given column name.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// LoadSheet opens the workbook at path and reads the named sheet,
// skipping skipRows leading rows. The first row after the skipped
// block is the header; every following row becomes a map keyed by
// column name. Errors from the workbook (missing file, missing sheet)
// are propagated.
func LoadSheet(path, sheet string, skipRows int) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if skipRows < 0 {
		skipRows = 0
	}
	if len(rows) <= skipRows {
		return nil, fmt.Errorf("sheet %q has no header row after skipping %d rows", sheet, skipRows)
	}

	header := rows[skipRows]
	columns := make([]string, 0, len(header))
	for _, name := range header {
		if name == "" {
			continue
		}
		columns = append(columns, name)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("sheet %q has an empty header row at row %d", sheet, skipRows+1)
	}

	table := &Table{
		Sheet:   sheet,
		Columns: columns,
	}

	for _, raw := range rows[skipRows+1:] {
		row := make(map[string]string, len(columns))
		// GetRows trims trailing empty cells, so index against the
		// header positions rather than the cell slice length.
		for i, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if i < len(raw) {
				value = raw[i]
			}
			row[name] = value
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
