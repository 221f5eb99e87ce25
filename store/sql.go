package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ariebrainware/hms-portal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL keeps collections as rows of the kv_entries table.
type SQL struct {
	db *gorm.DB
}

// NewSQL migrates the kv_entries table and returns the store.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := s.db.WithContext(ctx).Where("store_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Put upserts every entry inside one transaction.
func (s *SQL) Put(ctx context.Context, entries map[string][]byte) error {
	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range sortedKeys(entries) {
			entry := model.KVEntry{Key: k, Value: datatypes.JSON(entries[k]), UpdatedAt: now}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "store_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQL) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("store_key IN ?", keys).Delete(&model.KVEntry{}).Error
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (s *SQL) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&model.KVEntry{}).
		Where("store_key LIKE ? ESCAPE '!'", likeEscaper.Replace(prefix)+"%").
		Order("store_key").
		Pluck("store_key", &keys).Error
	return keys, err
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
