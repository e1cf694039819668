package config

import "errors"

var (
	ErrParsingConfig  = errors.New("config: failed to parse environment variables into config")
	ErrReadingEnvFile = errors.New("config: failed to read env file")
	ErrNilPointer     = errors.New("config: nil pointer provided to config loader")
	ErrInvalidConfig  = errors.New("config: invalid configuration")
)
