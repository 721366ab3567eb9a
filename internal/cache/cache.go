package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/surveyreport/internal/model"
)

// TableCache holds loaded survey tables keyed by source file
type TableCache interface {
	Get(key string) (*model.RawTable, bool)
	Set(key string, table *model.RawTable, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a resolved file path and its modification time
func CacheKey(path string, modTime time.Time) string {
	hash := sha256.Sum256([]byte(path + "\x00" + modTime.UTC().Format(time.RFC3339Nano)))
	return "surveyreport:v1:" + hex.EncodeToString(hash[:])
}
