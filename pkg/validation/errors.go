package validation

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout           = errors.New("validation: timed out waiting for pass completion")
	ErrIllegalTransition = errors.New("validation: illegal pass state transition")
	ErrNilCatalog        = errors.New("validation: catalog is nil")
)

// TransitionError reports an event fired in a state that does not accept it.
type TransitionError struct {
	From  PassState
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("validation: no transition from state %q for event %q", e.From, e.Event)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
