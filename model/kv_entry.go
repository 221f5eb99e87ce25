package model

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one persisted collection in the SQL store backend.
type KVEntry struct {
	Key       string         `json:"key" gorm:"column:store_key;primaryKey;type:varchar(191)"`
	Value     datatypes.JSON `json:"value" gorm:"column:value;type:json"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

// TableName pins the table name.
func (KVEntry) TableName() string {
	return "kv_entries"
}
