package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lukas4311/WpfValidation/modules/agreement"
	"github.com/lukas4311/WpfValidation/modules/callbatch"
)

// demoAgreements is an in-memory agreement storage with one stored agreement
// (ID 42) of agent 1.
type demoAgreements struct {
	mu         sync.Mutex
	enabled    bool
	agreements map[int]agreement.Agreement
	nextID     int
}

var agreementTypes = []agreement.Type{
	{ID: 1, Code: "gdpr", Name: "Personal data processing"},
	{ID: 2, Code: "mkt", Name: "Marketing"},
	{ID: 3, Code: "phone", Name: "Phone contact"},
}

func newDemoAgreements(enabled bool, now time.Time) *demoAgreements {
	start := firstOfMonth(now).AddDate(0, -6, 0)
	return &demoAgreements{
		enabled: enabled,
		agreements: map[int]agreement.Agreement{
			42: {
				ID:        42,
				AgentID:   1,
				Type:      agreementTypes[0],
				ValidFrom: start,
				ValidTo:   start.AddDate(2, 0, 0),
			},
		},
		nextID: 100,
	}
}

func (d *demoAgreements) UserEnabled(context.Context, int) (bool, error) {
	return d.enabled, nil
}

func (d *demoAgreements) Types(context.Context) ([]agreement.Type, error) {
	return agreementTypes, nil
}

func (d *demoAgreements) Agreement(_ context.Context, id int) (agreement.Agreement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.agreements[id]
	if !ok {
		return agreement.Agreement{}, fmt.Errorf("agreement %d not found", id)
	}
	return a, nil
}

func (d *demoAgreements) SaveAgreement(_ context.Context, a agreement.Agreement) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if a.ID == 0 {
		d.nextID++
		a.ID = d.nextID
	}
	d.agreements[a.ID] = a
	return a.ID, nil
}

// demoContacts is an in-memory call batch source. A batch contains three
// contacts per day of its status change window.
type demoContacts struct {
	mu   sync.Mutex
	auto bool
}

var contactStates = []callbatch.ContactState{
	{ID: 3, Name: "Contacted"},
	{ID: 9, Name: "Meeting arranged"},
	{ID: 12, Name: "Closed"},
}

func (d *demoContacts) ContactStates(context.Context) ([]callbatch.ContactState, error) {
	return contactStates, nil
}

func (d *demoContacts) AutoBatchEnabled(context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.auto, nil
}

func (d *demoContacts) SetAutoBatchEnabled(_ context.Context, enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.auto = enabled
	return nil
}

func (d *demoContacts) CreateBatch(_ context.Context, r callbatch.Request) (int, error) {
	days := int(r.StatusChangeTo.Sub(r.StatusChangeFrom) / (24 * time.Hour))
	return max(days, 0) * 3, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
