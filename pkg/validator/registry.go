package validator

import (
	"fmt"
	"reflect"
	"sync"
)

// Declarer is implemented by entity types that declare their own rules.
// DeclareRules is called once, on the zero value of the type, so it must not
// depend on receiver state.
type Declarer interface {
	DeclareRules(b *Builder)
}

// registry caches one catalog per entity type for the lifetime of the process.
// Entries are never removed; there is one per distinct type.
type registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*registryEntry
}

type registryEntry struct {
	once    sync.Once
	catalog *Catalog
	err     error
}

var globalRegistry = &registry{entries: make(map[reflect.Type]*registryEntry)}

func (r *registry) entry(t reflect.Type) *registryEntry {
	r.mu.RLock()
	e, ok := r.entries[t]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.entries[t]; !ok {
		e = &registryEntry{}
		r.entries[t] = e
	}
	return e
}

// CatalogFor returns the catalog of T, building it on first use. Build errors
// are cached as well, so every caller for a misconfigured type gets the same error.
func CatalogFor[T Declarer]() (*Catalog, error) {
	t := reflect.TypeFor[T]()
	e := globalRegistry.entry(t)
	e.once.Do(func() {
		var zero T
		b := NewBuilder()
		zero.DeclareRules(b)
		e.catalog, e.err = b.Build()
		if e.err != nil {
			e.err = fmt.Errorf("catalog for %s: %w", t, e.err)
		}
	})
	return e.catalog, e.err
}

// MustCatalogFor works like CatalogFor but panics on configuration errors.
func MustCatalogFor[T Declarer]() *Catalog {
	c, err := CatalogFor[T]()
	if err != nil {
		panic(err)
	}
	return c
}
