package tagraph

import "errors"

var (
	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoIndex indicates an operation that needs a built or loaded index.
	ErrNoIndex = errors.New("no index has been built")

	// ErrEngineRequired indicates a watcher created without an engine.
	ErrEngineRequired = errors.New("engine is required")
)
