package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Read decodes the collection stored at key. A missing key yields def with a
// nil error; an undecodable value yields def with an error wrapping ErrCorrupt.
func Read[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return v, nil
}

// Write serializes v and overwrites the value at key.
func Write(ctx context.Context, s Store, key string, v any) error {
	return NewBatch().Stage(key, v).Commit(ctx, s)
}

// Batch stages whole collections in memory and commits them in one Put.
type Batch struct {
	entries map[string][]byte
	err     error
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{entries: make(map[string][]byte)}
}

// Stage serializes v for key. Staging a key twice keeps the last value.
// The first encoding error is reported by Commit.
func (b *Batch) Stage(key string, v any) *Batch {
	if b.err != nil {
		return b
	}
	raw, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("encode %s: %w", key, err)
		return b
	}
	b.entries[key] = raw
	return b
}

// Keys returns the staged keys in sorted order.
func (b *Batch) Keys() []string {
	keys := make([]string, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of staged collections.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Commit writes every staged collection in one Put.
func (b *Batch) Commit(ctx context.Context, s Store) error {
	if b.err != nil {
		return b.err
	}
	if len(b.entries) == 0 {
		return nil
	}
	return s.Put(ctx, b.entries)
}

func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
