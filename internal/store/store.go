// Package store is the data access layer. Each method performs one logical
// operation against the database and returns either an entity, a view shaped
// for the API, or a sentinel error the handlers translate into an HTTP status.
package store

import "gorm.io/gorm"

// Store wraps the shared gorm handle. Every method is an independent unit of
// work; no two methods share a transaction.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
