package ingestion

import "errors"

var (
	// ErrLemmatizerRequired is returned when a lemmatizer is not provided.
	ErrLemmatizerRequired = errors.New("lemmatizer required")

	// ErrInvalidBatchSize is returned for a batch size below one.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)
