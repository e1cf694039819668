package validation_test

import (
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/pkg/validator"
)

var (
	jan1  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan10 = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan20 = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
)

func rangeCatalog(t *testing.T) *validator.Catalog {
	t.Helper()
	c, err := validator.Define(func(b *validator.Builder) {
		b.Property("ValidFrom").
			Required("valid from is required").
			Condition("FromNotAfterTo", "valid from must not be after valid to").
			Summary(2)
		b.Property("ValidTo").
			Condition("ToNotBeforeFrom", "valid to must not be before valid from").
			Summary(1)
		b.Property("Name").
			Rule(validator.MinLen(3), validator.Pattern(`^[a-z]+$`, "lowercase"))
		b.Property("Trap").
			Condition("Explode", "unused")

		b.Predicate("FromNotAfterTo", func(v any, s validator.Snapshot) bool {
			from, ok := v.(time.Time)
			to, tok := validator.Field[time.Time](s, "ValidTo")
			return !ok || !tok || !from.After(to)
		})
		b.Predicate("ToNotBeforeFrom", func(v any, s validator.Snapshot) bool {
			to, ok := v.(time.Time)
			from, fok := validator.Field[time.Time](s, "ValidFrom")
			return !ok || !fok || !to.Before(from)
		})
		b.Predicate("Explode", func(v any, _ validator.Snapshot) bool {
			if v == "boom" {
				panic("trap triggered")
			}
			return true
		})
	})
	require.NoError(t, err)
	return c
}

// values is a concurrency-safe stand-in for an entity's property store.
type values struct {
	mu sync.Mutex
	m  map[string]any
}

func newValues(kv map[string]any) *values {
	return &values{m: maps.Clone(kv)}
}

func (v *values) set(name string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.m == nil {
		v.m = map[string]any{}
	}
	v.m[name] = value
}

func (v *values) snapshot() validator.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return maps.Clone(v.m)
}

// recorder collects callback invocations in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}
