package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row targeted by id or date does not exist
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
