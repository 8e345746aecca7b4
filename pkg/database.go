package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nithishcb360/recruit-sub001/internal/config"
)

// InitDatabase opens the embedded sqlite database backing the local store.
// The parent directory is created on first run.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	path := cfg.LocalStorePath
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create local store directory: %w", err)
		}
	}

	logLevel := gormlogger.Warn
	if cfg.Environment == "production" {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store at %s: %w", path, err)
	}

	return db, nil
}
