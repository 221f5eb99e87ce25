package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestKVEntryModel_Upsert(t *testing.T) {
	db := setupTestDB(t, "kv_entry", &KVEntry{})
	assert.True(t, db.Migrator().HasTable("kv_entries"))

	entry := KVEntry{Key: KeyBills, Value: datatypes.JSON(`[]`)}
	require.NoError(t, db.Create(&entry).Error)

	entry.Value = datatypes.JSON(`[{"id":"bill01"}]`)
	require.NoError(t, db.Save(&entry).Error)

	var found KVEntry
	require.NoError(t, db.First(&found, "store_key = ?", KeyBills).Error)
	assert.JSONEq(t, `[{"id":"bill01"}]`, string(found.Value))

	var count int64
	db.Model(&KVEntry{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
