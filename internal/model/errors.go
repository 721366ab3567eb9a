package model

import "fmt"

// NoDataMessage is what users see when no survey file could be loaded
const NoDataMessage = "Archivo no encontrado. Verifique que 'datosbuenosaires.xlsx' esté en el repositorio."

// DataSourceError means the input spreadsheet is missing or unreadable.
// Callers render it as an empty "no data" state rather than a crash.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("data source: %v", e.Err)
	}
	return fmt.Sprintf("data source %s: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// ConfigurationError means the column-role contract does not fit the loaded table.
// Report generation must stop: any output would misattribute columns.
type ConfigurationError struct {
	Role    Role
	Index   int
	Columns int
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("column contract: role %s: %s", e.Role, e.Reason)
	}
	return fmt.Sprintf("column contract: role %s -> column %d (table has %d columns): %s",
		e.Role, e.Index, e.Columns, e.Reason)
}

// RenderError means one report section could not be embedded.
// It is fatal to the current report only.
type RenderError struct {
	Index   int
	Caption string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render section %d (%q): %v", e.Index, e.Caption, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
