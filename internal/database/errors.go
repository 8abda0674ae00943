package database

import "errors"

var (
	// ErrDatabaseNotFound is returned by Open when the database file does not
	// exist and Options.CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrSchemaMissing is returned when a table required for seeding does not exist.
	// Run the migrate command (or pass --create-schema) to create it.
	ErrSchemaMissing = errors.New("database schema missing")
)
