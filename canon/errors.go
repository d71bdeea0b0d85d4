package canon

import "errors"

var (
	// ErrLemmatizerRequired is returned when no lemmatizer is provided.
	ErrLemmatizerRequired = errors.New("lemmatizer required")

	// ErrInvalidMinCount is returned for a negative frequency floor.
	ErrInvalidMinCount = errors.New("min count must not be negative")
)
