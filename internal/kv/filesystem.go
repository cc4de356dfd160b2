package kv

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gallery-go/internal/gallery"
)

// FileSystemStore is a filesystem-based implementation of gallery.KVStore.
// Each key is stored as one file under root:
//
//	<root>/
//	  <hex(key)>.dat
//
// Keys are hex-encoded so arbitrary key strings map to safe file names.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a store rooted at the given directory, creating it if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

func (s *FileSystemStore) path(key string) string {
	return filepath.Join(s.root, hex.EncodeToString([]byte(key))+".dat")
}

// Get reads the file for key.
func (s *FileSystemStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gallery.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read value: %w", err)
	}
	return data, nil
}

// Put replaces the file for key using atomic write (temp file + rename).
func (s *FileSystemStore) Put(_ context.Context, key string, value []byte) error {
	destPath := s.path(key)

	// Create temp file in the same directory to ensure atomic rename works
	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(value); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// ValidateSetup verifies that the storage root exists and is a directory.
func (s *FileSystemStore) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("storage root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root is not a directory: %s", s.root)
	}
	return nil
}

// Close is a no-op for the filesystem store.
func (s *FileSystemStore) Close() error { return nil }

// Compile-time check that FileSystemStore implements gallery.KVStore
var _ gallery.KVStore = (*FileSystemStore)(nil)
