package model

// Cell is a single spreadsheet value. The zero value is a null cell.
type Cell struct {
	String string
	Valid  bool
}

// Text returns a non-null cell holding s
func Text(s string) Cell {
	return Cell{String: s, Valid: true}
}

// Null returns a null cell
func Null() Cell {
	return Cell{}
}

// IsNull reports whether the cell carries no value
func (c Cell) IsNull() bool {
	return !c.Valid
}

// RawTable is the spreadsheet exactly as loaded: a header row plus data rows.
// It is read-only once returned by the loader.
type RawTable struct {
	Path    string   `json:"path"`
	Sheet   string   `json:"sheet"`
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

// ColumnCount returns the widest of the header row and all data rows
func (t *RawTable) ColumnCount() int {
	if t == nil {
		return 0
	}
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// At returns the cell at (row, col). Cells past the end of a short row are null.
func (t *RawTable) At(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Cell{}
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Header returns the header label of a column, or "" when absent
func (t *RawTable) Header(col int) string {
	if col < 0 || col >= len(t.Headers) {
		return ""
	}
	return t.Headers[col]
}
