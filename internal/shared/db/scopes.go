package db

import (
	"gorm.io/gorm"
)

// NotDeleted hides soft-deleted rows in queries that bypass gorm's automatic
// soft-delete filter, such as raw Table() queries or counts over joins.
func NotDeleted(alias ...string) func(db *gorm.DB) *gorm.DB {
	column := "deleted_at"
	if len(alias) > 0 && alias[0] != "" {
		column = alias[0] + ".deleted_at"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column + " IS NULL")
	}
}
