package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies what changed on an entity.
type Kind int

const (
	PropertyChanging Kind = iota + 1
	PropertyChanged
	ErrorsChanged
	ValidationStateChanged
)

var kindNames = map[Kind]string{
	PropertyChanging:       "property_changing",
	PropertyChanged:        "property_changed",
	ErrorsChanged:          "errors_changed",
	ValidationStateChanged: "validation_state_changed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(s), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, text)
}

// Notification describes one change on one entity instance. Property is empty
// for ValidationStateChanged; Running is only meaningful for that kind.
type Notification struct {
	EntityID uuid.UUID `json:"entity_id"`
	Kind     Kind      `json:"kind"`
	Property string    `json:"property,omitempty"`
	Running  bool      `json:"running,omitempty"`
	At       time.Time `json:"at"`
}
