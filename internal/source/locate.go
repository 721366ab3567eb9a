package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/surveyreport/internal/model"
)

// ErrNotFound is wrapped in a DataSourceError when no input file exists
var ErrNotFound = errors.New("survey file not found")

// Locate resolves the survey file: the configured path first, then the first
// file in the search directory (by name) with the configured extension whose
// name contains the match string.
func Locate(cfg model.InputConfig) (string, error) {
	if cfg.Path != "" {
		info, err := os.Stat(cfg.Path)
		if err == nil && !info.IsDir() {
			return cfg.Path, nil
		}
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	ext := strings.ToLower(cfg.Extension)
	if ext == "" {
		ext = ".xlsx"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &model.DataSourceError{Path: dir, Err: fmt.Errorf("list directory: %w", err)}
	}

	// os.ReadDir returns entries sorted by name
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") {
			// Office lock file
			continue
		}
		if strings.ToLower(filepath.Ext(name)) != ext {
			continue
		}
		if cfg.Match != "" && !strings.Contains(name, cfg.Match) {
			continue
		}
		return filepath.Join(dir, name), nil
	}

	return "", &model.DataSourceError{Path: cfg.Path, Err: ErrNotFound}
}
