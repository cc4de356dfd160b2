package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gallery-go/internal/config"
)

// NewSQLiteStoreFromConfig creates a SQLiteStore at <data_dir>/<hostID>.db.
func NewSQLiteStoreFromConfig(cfg config.StorageConfig, hostID string) (*SQLiteStore, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data_dir required for sqlite storage")
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(cfg.DataDir, hostID+".db")
	return NewSQLiteStore(dbPath, nil)
}
