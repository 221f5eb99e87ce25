// Package repository is the data access layer. Each method loads whole
// collections from the store, filters or mutates them and writes whole
// collections back. Writes touching several collections are committed as one
// store batch.
package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
	"github.com/rs/zerolog"
)

const timeLayout = "15:04:05"

// Repository exposes one method per (entity, operation) pair.
type Repository struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time

	// mu serializes read-modify-write cycles within the process.
	mu sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New returns a repository over s.
func New(s store.Store, log zerolog.Logger, opts ...Option) *Repository {
	r := &Repository{store: s, log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying store.
func (r *Repository) Store() store.Store {
	return r.store
}

// Now returns the repository clock reading.
func (r *Repository) Now() time.Time {
	return r.now()
}

// Initialize seeds the store on first run.
func (r *Repository) Initialize(ctx context.Context) error {
	seeded, err := store.Initialize(ctx, r.store, r.now())
	if err != nil {
		return err
	}
	if seeded {
		r.log.Info().Msg("store seeded with default records")
	}
	return nil
}

func (r *Repository) today() string {
	return r.now().Format(model.DateLayout)
}

func (r *Repository) clockTime() string {
	return r.now().Format(timeLayout)
}

// seedDefault returns the seed value of key, or the zero value.
func seedDefault[T any](r *Repository, key string) T {
	v, _ := model.SeedData(r.now())[key].(T)
	return v
}

// load reads a whole collection. Missing or corrupt collections fall back to
// their seed records.
func load[T any](ctx context.Context, r *Repository, key string) ([]T, error) {
	def := seedDefault[[]T](r, key)
	items, err := store.Read(ctx, r.store, key, def)
	if errors.Is(err, store.ErrCorrupt) {
		r.log.Warn().Err(err).Str("key", key).Msg("corrupt collection, falling back to seed records")
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return items, nil
}

func (r *Repository) loadCredentials(ctx context.Context) (model.Credentials, error) {
	def := seedDefault[model.Credentials](r, model.KeyPasswords)
	creds, err := store.Read(ctx, r.store, model.KeyPasswords, def)
	if errors.Is(err, store.ErrCorrupt) {
		r.log.Warn().Err(err).Msg("corrupt credential map, falling back to seed records")
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if creds == nil {
		creds = model.Credentials{}
	}
	return creds, nil
}

func (r *Repository) commit(ctx context.Context, b *store.Batch) error {
	if err := b.Commit(ctx, r.store); err != nil {
		return fmt.Errorf("write %v: %w", b.Keys(), err)
	}
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

// nextID formats n with format and increments n until the id is unused.
func nextID[T any](items []T, id func(T) string, format string, n int) string {
	taken := make(map[string]struct{}, len(items))
	for _, it := range items {
		taken[id(it)] = struct{}{}
	}
	for {
		candidate := fmt.Sprintf(format, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		n++
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r *Repository) findUser(users []model.User, id string) (model.User, bool) {
	i := indexOf(users, func(u model.User) bool { return u.ID == id })
	if i < 0 {
		return model.User{}, false
	}
	return users[i], true
}

func (r *Repository) patient(ctx context.Context, id string) (model.User, error) {
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.User{}, err
	}
	u, ok := r.findUser(users, id)
	if !ok || !u.IsPatient() {
		return model.User{}, notFound("Patient")
	}
	return u, nil
}
