package engine

import "errors"

var (
	// ErrUnknownAlgorithm indicates a name that does not map to an Algorithm.
	ErrUnknownAlgorithm = errors.New("engine: unknown algorithm")

	// ErrInvalidPacing indicates speed or delay bounds that cannot be mapped.
	ErrInvalidPacing = errors.New("engine: invalid pacing bounds")
)
