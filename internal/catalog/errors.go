package catalog

import "errors"

// Validation errors returned by Validate.
var (
	// ErrEmptyTitle is returned when a research entry has no title.
	ErrEmptyTitle = errors.New("research entry title cannot be empty")

	// ErrInvalidSourceURL is returned when a research entry's source URL is not
	// an absolute http(s) URL.
	ErrInvalidSourceURL = errors.New("research entry source URL must be an absolute http(s) URL")

	// ErrDuplicateTitle is returned when two research entries in the same batch
	// share a title. The database would silently drop the second one.
	ErrDuplicateTitle = errors.New("duplicate research entry title")

	// ErrEmptyCategory is returned when an optimization entry has no category.
	ErrEmptyCategory = errors.New("optimization entry category cannot be empty")

	// ErrEmptyDescription is returned when an optimization entry has no description.
	ErrEmptyDescription = errors.New("optimization entry description cannot be empty")
)
