package kv

import (
	"context"
	"testing"

	"gallery-go/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("memory store", func(t *testing.T) {
		got, err := NewStoreFromConfig(ctx, config.StorageConfig{Type: "memory"}, "h")
		if err != nil {
			t.Fatalf("NewStoreFromConfig() unexpected error: %v", err)
		}
		defer got.Close()
		if _, ok := got.(*MemoryStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *MemoryStore", got)
		}
	})

	t.Run("filesystem store", func(t *testing.T) {
		cfg := config.StorageConfig{Type: "filesystem", FSRoot: t.TempDir()}
		got, err := NewStoreFromConfig(ctx, cfg, "h")
		if err != nil {
			t.Fatalf("NewStoreFromConfig() unexpected error: %v", err)
		}
		defer got.Close()
		if _, ok := got.(*FileSystemStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *FileSystemStore", got)
		}
	})

	t.Run("sqlite store", func(t *testing.T) {
		cfg := config.StorageConfig{Type: "sqlite", DataDir: t.TempDir()}
		got, err := NewStoreFromConfig(ctx, cfg, "h")
		if err != nil {
			t.Fatalf("NewStoreFromConfig() unexpected error: %v", err)
		}
		got.Close()
	})

	errorCases := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{name: "filesystem without fs_root", cfg: config.StorageConfig{Type: "filesystem"}},
		{name: "sqlite without data_dir", cfg: config.StorageConfig{Type: "sqlite"}},
		{name: "redis without addr", cfg: config.StorageConfig{Type: "redis"}},
		{name: "s3 without bucket", cfg: config.StorageConfig{Type: "s3"}},
		{name: "unknown type", cfg: config.StorageConfig{Type: "floppy"}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStoreFromConfig(ctx, tt.cfg, "h")
			if err == nil {
				t.Error("NewStoreFromConfig() expected error, got nil")
			}
			if got != nil {
				t.Errorf("NewStoreFromConfig() = %v, want nil on error", got)
			}
		})
	}
}
