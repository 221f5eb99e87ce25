package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/hms-portal/model"
)

// Initialized reports whether the sentinel flag is set. An undecodable
// sentinel counts as unset so the store gets reseeded.
func Initialized(ctx context.Context, s Store) (bool, error) {
	done, err := Read(ctx, s, model.KeyInitialized, false)
	if errors.Is(err, ErrCorrupt) {
		return false, nil
	}
	return done, err
}

// Initialize seeds every collection and the sentinel in one batch, unless the
// sentinel is already present. It reports whether seeding happened.
func Initialize(ctx context.Context, s Store, now time.Time) (bool, error) {
	done, err := Initialized(ctx, s)
	if err != nil {
		return false, fmt.Errorf("read sentinel: %w", err)
	}
	if done {
		return false, nil
	}

	b := NewBatch()
	for key, v := range model.SeedData(now) {
		b.Stage(key, v)
	}
	b.Stage(model.KeyInitialized, true)
	if err := b.Commit(ctx, s); err != nil {
		return false, fmt.Errorf("seed store: %w", err)
	}
	return true, nil
}

// Reset removes every collection, the sentinel and all sessions, then seeds again.
func Reset(ctx context.Context, s Store, now time.Time) error {
	sessions, err := s.Keys(ctx, model.SessionKeyPrefix)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	keys := append([]string{model.KeyInitialized}, model.CollectionKeys...)
	keys = append(keys, sessions...)
	if err := s.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	_, err = Initialize(ctx, s, now)
	return err
}
