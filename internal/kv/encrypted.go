package kv

import (
	"bytes"
	"context"
	"fmt"

	"gallery-go/internal/gallery"
)

// EncryptedStore encrypts values before handing them to an inner store and
// decrypts them on the way out. Writes need only the public key; reads need
// an unlocked DecryptionContext.
type EncryptedStore struct {
	inner gallery.KVStore
	enc   gallery.Encryptor
	dec   gallery.DecryptionContext
}

// NewEncryptedStore wraps inner. dec may be nil, in which case Get fails.
func NewEncryptedStore(inner gallery.KVStore, enc gallery.Encryptor, dec gallery.DecryptionContext) *EncryptedStore {
	return &EncryptedStore{inner: inner, enc: enc, dec: dec}
}

// Get reads and decrypts the value stored under key.
func (s *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	ciphertext, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if s.dec == nil {
		return nil, fmt.Errorf("store is locked: no decryption key available")
	}

	var buf bytes.Buffer
	if err := s.dec.Decrypt(bytes.NewReader(ciphertext), &buf); err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Put encrypts value and stores the ciphertext under key.
func (s *EncryptedStore) Put(ctx context.Context, key string, value []byte) error {
	var buf bytes.Buffer
	if err := s.enc.Encrypt(bytes.NewReader(value), &buf); err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return s.inner.Put(ctx, key, buf.Bytes())
}

// Close closes the inner store.
func (s *EncryptedStore) Close() error {
	return s.inner.Close()
}

var _ gallery.KVStore = (*EncryptedStore)(nil)
