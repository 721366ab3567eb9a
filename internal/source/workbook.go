package source

import (
	"fmt"

	"github.com/ppiankov/surveyreport/internal/model"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads one sheet of an .xlsx file. The first row is the header
// row; every following row is kept, including blank ones. Empty cells are null.
// An empty sheet name selects the first sheet.
func ReadWorkbook(path, sheet string) (table *model.RawTable, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &model.DataSourceError{Path: path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &model.DataSourceError{Path: path, Err: fmt.Errorf("close workbook: %w", closeErr)}
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &model.DataSourceError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &model.DataSourceError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}

	table = &model.RawTable{
		Path:  path,
		Sheet: sheet,
		Rows:  [][]model.Cell{},
	}
	if len(rows) == 0 {
		table.Headers = []string{}
		return table, nil
	}

	table.Headers = append([]string{}, rows[0]...)
	for _, row := range rows[1:] {
		cells := make([]model.Cell, len(row))
		for i, v := range row {
			if v != "" {
				cells[i] = model.Text(v)
			}
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}
