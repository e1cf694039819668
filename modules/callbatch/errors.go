package callbatch

import "errors"

var (
	ErrNilSource      = errors.New("callbatch: source is nil")
	ErrNotReady       = errors.New("callbatch: form has errors")
	ErrUnknownState   = errors.New("callbatch: unknown contact state")
	ErrNoContactState = errors.New("callbatch: no contact states available")
	ErrLoadFailed     = errors.New("callbatch: loading failed")
	ErrBatchFailed    = errors.New("callbatch: creating batch failed")
)
