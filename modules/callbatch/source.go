package callbatch

import (
	"context"
	"time"
)

// ContactState is a CRM contact state.
type ContactState struct {
	ID   int
	Name string
}

// Request selects the contacts of one batch. Zero IDs and day counts mean
// "any".
type Request struct {
	BatchType         int
	StatusChangeFrom  time.Time
	StatusChangeTo    time.Time
	StateID           int
	RegionID          int
	AgentID           int
	MarketingSourceID int
	MinDays           int
	MaxDays           int
}

// Source provides the lookup data of the form and creates batches.
type Source interface {
	ContactStates(ctx context.Context) ([]ContactState, error)
	AutoBatchEnabled(ctx context.Context) (bool, error)
	SetAutoBatchEnabled(ctx context.Context, enabled bool) error
	// CreateBatch imports the matching contacts and returns how many were added.
	CreateBatch(ctx context.Context, r Request) (int, error)
}
