package agreement

import (
	"context"
	"time"
)

// Type is an agreement type an agent can consent to.
type Type struct {
	ID          int
	Code        string
	Name        string
	Description string
}

// Agreement is the persisted form of an agent's agreement. ID is zero until
// the agreement is stored for the first time.
type Agreement struct {
	ID        int
	AgentID   int
	Type      Type
	ValidFrom time.Time
	ValidTo   time.Time
}

// Storage defines the storage operations the form needs.
type Storage interface {
	// UserEnabled reports whether the user behind the agent may edit agreements.
	UserEnabled(ctx context.Context, agentID int) (bool, error)
	Types(ctx context.Context) ([]Type, error)
	Agreement(ctx context.Context, paramID int) (Agreement, error)
	// SaveAgreement stores a and returns its ID.
	SaveAgreement(ctx context.Context, a Agreement) (int, error)
}
