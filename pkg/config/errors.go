package config

import "errors"

var (
	// ErrParsingConfig wraps failures to parse environment variables into
	// the target struct, including missing required values.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when Load is given a nil destination.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
