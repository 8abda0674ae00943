package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is() by callers.
var (
	// ErrEmptyDBPath is returned when no database path is configured.
	ErrEmptyDBPath = errors.New("invalid database path: must not be empty")

	// ErrInvalidBusyTimeout is returned when the busy timeout is negative.
	// Use 0 to fail immediately on a locked database.
	ErrInvalidBusyTimeout = errors.New("invalid busy timeout: must be non-negative")

	// ErrConflictingFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrConfigExists is returned by init when the target file is already
	// present and overwriting was not requested.
	ErrConfigExists = errors.New("configuration file already exists")
)
