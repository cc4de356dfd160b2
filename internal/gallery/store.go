package gallery

import (
	"context"
	"errors"
)

// Store is the media store: it loads the collection from a KVStore and
// writes it back after every mutation. Mutations are pure transforms of the
// collection value passed in; the result is persisted before it is returned.
//
// Storage failures never reach the caller. A failed read yields an empty
// collection and a failed write leaves the returned value authoritative for
// the rest of the session; both are logged.
type Store struct {
	kv     KVStore
	key    string
	ids    IDGenerator
	logger Logger
}

// StoreOption configures optional Store behaviour.
type StoreOption func(*Store)

// WithKey overrides the storage slot. The default is MediaKey.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithIDGenerator sets the generator used to repair ids on load.
func WithIDGenerator(ids IDGenerator) StoreOption {
	return func(s *Store) { s.ids = ids }
}

// NewStore creates a Store persisting to kv.
func NewStore(kv KVStore, logger Logger, opts ...StoreOption) *Store {
	s := &Store{
		kv:     kv,
		key:    MediaKey,
		ids:    UUIDGenerator{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage slot the store reads and writes.
func (s *Store) Key() string { return s.key }

// Load reads the persisted collection. It returns an empty collection when
// nothing is stored or the stored value cannot be read.
func (s *Store) Load(ctx context.Context) Collection {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			s.logger.Debug("no stored media", "key", s.key)
		} else {
			s.logger.Error("error loading media references", "key", s.key, "error", err)
		}
		return Collection{}
	}

	c, err := DecodeCollection(data, s.ids, s.logger)
	if err != nil {
		s.logger.Error("error loading media references", "key", s.key, "error", err)
		return Collection{}
	}

	s.logger.Debug("media loaded", "count", len(c))
	return c
}

// Append adds entries after all existing ones and persists the result.
func (s *Store) Append(ctx context.Context, c Collection, entries ...MediaEntry) Collection {
	out := Append(c, entries...)
	s.persist(ctx, out)
	return out
}

// Delete removes the entry with the given id and persists the result.
func (s *Store) Delete(ctx context.Context, c Collection, id string) Collection {
	out := Delete(c, id)
	s.persist(ctx, out)
	return out
}

// Reorder moves the entry with the given id to the user-typed target
// position. A target that is not an integer returns ErrInvalidIndex and c
// unchanged, without touching storage.
func (s *Store) Reorder(ctx context.Context, c Collection, id string, target string) (Collection, error) {
	index, err := ParseTargetIndex(target)
	if err != nil {
		return c, err
	}
	return s.ReorderTo(ctx, c, id, index), nil
}

// ReorderTo moves the entry with the given id to index, clamped into range,
// and persists the result.
func (s *Store) ReorderTo(ctx context.Context, c Collection, id string, index int) Collection {
	out := Move(c, id, index)
	s.persist(ctx, out)
	return out
}

// persist overwrites the storage slot with c.
func (s *Store) persist(ctx context.Context, c Collection) {
	data, err := EncodeCollection(c)
	if err != nil {
		s.logger.Error("error saving media", "error", err)
		return
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		s.logger.Error("error saving media", "key", s.key, "error", err)
		return
	}
	s.logger.Debug("media saved", "count", len(c))
}
