package validator

import (
	"errors"
	"fmt"
)

// Configuration errors returned while building a catalog.
var (
	ErrEmptyPropertyName   = errors.New("validator: property name is empty")
	ErrUnknownProperty     = errors.New("validator: rule declared on an undeclared property")
	ErrUnresolvedCondition = errors.New("validator: condition references an unknown predicate")
	ErrDuplicatePredicate  = errors.New("validator: predicate declared twice")
	ErrNilCheck            = errors.New("validator: rule has no check function")
	ErrUnknownRuleKind     = errors.New("validator: unknown rule kind")
	ErrInvalidCatalog      = errors.New("validator: invalid catalog document")
)

// ErrEvaluationFault matches every *EvaluationError.
var ErrEvaluationFault = errors.New("validator: rule evaluation fault")

// EvaluationError reports a rule that panicked while being evaluated.
type EvaluationError struct {
	Property string
	Rule     string
	Panic    any
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("validator: rule %q on property %q panicked: %v", e.Rule, e.Property, e.Panic)
}

// Unwrap exposes the panic value when it was an error.
func (e *EvaluationError) Unwrap() error {
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}

func (e *EvaluationError) Is(target error) bool {
	return target == ErrEvaluationFault
}

// IsEvaluationError reports whether err is or wraps an *EvaluationError.
func IsEvaluationError(err error) bool {
	var e *EvaluationError
	return errors.As(err, &e)
}
