package config

import (
	"fmt"

	"github.com/ariebrainware/hms-portal/store"
	"gorm.io/gorm"
)

const redisStorePrefix = "hms:"

// OpenStore returns the persistent store selected by STORE_DRIVER. The sql
// driver needs db; the redis driver connects through ConnectRedis.
func OpenStore(db *gorm.DB) (store.Store, error) {
	cfg := LoadConfig()
	switch cfg.StoreDriver {
	case "", "memory":
		return store.NewMemory(), nil
	case "redis":
		rdb, err := ConnectRedis()
		if err != nil {
			return nil, err
		}
		if rdb == nil {
			return nil, fmt.Errorf("redis store requested but no client is available")
		}
		return store.NewRedis(rdb, redisStorePrefix), nil
	case "sql":
		if db == nil {
			return nil, fmt.Errorf("sql store requested but no database is connected")
		}
		s, err := store.NewSQL(db)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
}
