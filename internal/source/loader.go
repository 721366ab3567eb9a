// Package source finds the survey spreadsheet and loads it once per process.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ppiankov/surveyreport/internal/cache"
	"github.com/ppiankov/surveyreport/internal/model"
	"go.uber.org/zap"
)

// Loader locates and reads the survey table, memoizing the result.
// A table is written to the cache once and only read afterwards.
type Loader struct {
	cfg    model.InputConfig
	cache  cache.TableCache
	ttl    time.Duration
	logger *zap.Logger

	mu sync.Mutex
}

// NewLoader creates a loader. A nil cache disables memoization.
func NewLoader(cfg model.InputConfig, c cache.TableCache, ttl time.Duration, logger *zap.Logger) *Loader {
	if c == nil {
		c = cache.NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cfg:    cfg,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Load returns the survey table. A missing or unreadable file is reported as
// *model.DataSourceError and is not cached, so a later call can pick the file up.
func (l *Loader) Load() (*model.RawTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	path, err := Locate(l.cfg)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &model.DataSourceError{Path: path, Err: err}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	key := cache.CacheKey(abs, info.ModTime())

	if table, found := l.cache.Get(key); found {
		l.logger.Debug("survey table served from cache", zap.String("path", path))
		return table, nil
	}

	start := time.Now()
	table, err := ReadWorkbook(path, l.cfg.Sheet)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(key, table, l.ttl); err != nil {
		return nil, fmt.Errorf("cache table: %w", err)
	}

	l.logger.Info("survey table loaded",
		zap.String("path", path),
		zap.String("sheet", table.Sheet),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", table.ColumnCount()),
		zap.Duration("took", time.Since(start)))

	return table, nil
}
