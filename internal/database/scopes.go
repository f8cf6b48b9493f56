package database

import (
	"gorm.io/gorm"
)

// Limit caps a GORM query at n rows. A non-positive n leaves the query unbounded.
func Limit(n int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	}
}
