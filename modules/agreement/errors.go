package agreement

import "errors"

var (
	ErrNilStorage   = errors.New("agreement: storage is nil")
	ErrNotSavable   = errors.New("agreement: form has errors or the user is disabled")
	ErrNotLoaded    = errors.New("agreement: form was not loaded")
	ErrUnknownType  = errors.New("agreement: unknown agreement type")
	ErrLoadFailed   = errors.New("agreement: loading failed")
	ErrSavingFailed = errors.New("agreement: saving failed")
)
