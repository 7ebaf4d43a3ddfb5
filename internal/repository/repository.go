// Package repository holds the gorm data access layer. Methods that take a
// tx parameter participate in the caller's transaction when one is passed;
// a nil tx falls back to the repository's own connection.
package repository

import "gorm.io/gorm"

func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
