package notify

import "errors"

var (
	ErrClosed             = errors.New("notify: broadcaster is closed")
	ErrEmptyChannel       = errors.New("notify: redis channel name is empty")
	ErrEmptyConnectionURL = errors.New("notify: empty redis connection URL")
	ErrParseRedisURL      = errors.New("notify: failed to parse redis connection URL")
	ErrRedisNotReady      = errors.New("notify: redis did not become ready within the given time period")
	ErrUnknownKind        = errors.New("notify: unknown notification kind")
)
