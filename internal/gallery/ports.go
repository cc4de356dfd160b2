package gallery

import (
	"context"
	"errors"
	"io"
)

// MediaKey is the storage slot holding the serialized collection.
const MediaKey = "@MyPhotoGallery:mediaItems"

// ErrKeyNotFound is returned by KVStore.Get when nothing has been stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is a durable key-value slot store. Each Put replaces the whole
// value stored under the key; implementations must never leave a partially
// written value visible to Get.
type KVStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Encryptor seals stored values with a public key. Reading them back needs
// the passphrase-protected private key, unlocked once per process.
type Encryptor interface {
	// Setup generates and writes the key pair. It runs once, from
	// `gallery config keys init`.
	Setup(passphrase string) error
	Encrypt(r io.Reader, w io.Writer) error
	// Unlock fails if passphrase does not open the private key.
	Unlock(passphrase string) (DecryptionContext, error)
	IsConfigured() bool
}

// DecryptionContext is an unlocked private key, held in memory only.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}

// Logger receives diagnostics, including the storage failures the Store
// swallows. args are slog-style key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

var _ Logger = NopLogger{}

func NewNopLogger() NopLogger { return NopLogger{} }

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
