package kv

import (
	"context"
	"fmt"

	"gallery-go/internal/config"
	"gallery-go/internal/database"
	"gallery-go/internal/gallery"
)

// NewStoreFromConfig creates a KVStore implementation based on the storage config type.
func NewStoreFromConfig(ctx context.Context, cfg config.StorageConfig, hostID string) (gallery.KVStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires fs_root to be set")
		}
		s, err := NewFileSystemStore(cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := database.NewSQLiteStoreFromConfig(cfg, hostID)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis storage requires redis_addr to be set")
		}
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = "gallery:" + hostID + ":"
		}
		s, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		if cfg.S3Prefix == "" {
			cfg.S3Prefix = hostID
		}
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
