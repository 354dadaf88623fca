package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It wraps the underlying driver error.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository
// methods can run standalone or inside a service-owned transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}
