package property

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// Handler is notified with the name of a property that is about to change or has changed.
type Handler func(name string)

// Store holds named values. All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]any

	changing handlerList
	changed  handlerList
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// Set stores value under name. It returns false without notifying anybody when
// the stored value is equal to value. Otherwise it fires the changing handlers,
// writes the value, fires the changed handlers and returns true.
func (s *Store) Set(name string, value any) bool {
	s.mu.RLock()
	current := s.values[name]
	s.mu.RUnlock()

	if Equal(current, value) {
		return false
	}

	s.changing.fire(name)

	s.mu.Lock()
	if isNil(value) {
		delete(s.values, name)
	} else {
		s.values[name] = value
	}
	s.mu.Unlock()

	s.changed.fire(name)
	return true
}

// Get returns the value stored under name or nil.
func (s *Store) Get(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Has reports whether a non-nil value is stored under name.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[name]
	return ok
}

// Names returns the names of all stored values in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	s.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Snapshot returns a copy of all values taken under a single read lock.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	return snap
}

// OnChanging registers h to run before a changed value is written.
// The returned function removes the handler.
func (s *Store) OnChanging(h Handler) (cancel func()) {
	return s.changing.add(h)
}

// OnChanged registers h to run after a changed value is written.
// The returned function removes the handler.
func (s *Store) OnChanged(h Handler) (cancel func()) {
	return s.changed.add(h)
}

// Value returns the value stored under name converted to T.
// Missing names and values of another type yield the zero value of T.
func Value[T any](s *Store, name string) T {
	v, _ := Lookup[T](s, name)
	return v
}

// Lookup returns the value stored under name converted to T and whether
// the value was present and of type T.
func Lookup[T any](s *Store, name string) (T, bool) {
	v, ok := s.Get(name).(T)
	return v, ok
}

// Equal reports whether two property values are equal. Values whose type has
// an Equal(T) bool method (time.Time for instance) are compared with it,
// everything else with reflect.DeepEqual. Any kind of nil equals any other
// kind of nil.
func Equal(a, b any) bool {
	aNil, bNil := isNil(a), isNil(b)
	if aNil || bNil {
		return aNil == bNil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if eq, ok := equalMethod(a, b); ok {
		return eq
	}
	return reflect.DeepEqual(a, b)
}

func equalMethod(a, b any) (result, ok bool) {
	m := reflect.ValueOf(a).MethodByName("Equal")
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return false, false
	}
	bv := reflect.ValueOf(b)
	if !bv.Type().AssignableTo(mt.In(0)) {
		return false, false
	}
	return m.Call([]reflect.Value{bv})[0].Bool(), true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

type handlerEntry struct {
	id uint64
	fn Handler
}

// handlerList is a copy-on-write list so firing never holds a lock while
// user code runs.
type handlerList struct {
	mu      sync.Mutex
	nextID  uint64
	entries atomic.Pointer[[]handlerEntry]
}

func (l *handlerList) add(h Handler) func() {
	if h == nil {
		return func() {}
	}

	l.mu.Lock()
	l.nextID++
	id := l.nextID
	var next []handlerEntry
	if cur := l.entries.Load(); cur != nil {
		next = slices.Clone(*cur)
	}
	next = append(next, handlerEntry{id: id, fn: h})
	l.entries.Store(&next)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *handlerList) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.entries.Load()
	if cur == nil {
		return
	}
	next := slices.DeleteFunc(slices.Clone(*cur), func(e handlerEntry) bool {
		return e.id == id
	})
	l.entries.Store(&next)
}

func (l *handlerList) fire(name string) {
	cur := l.entries.Load()
	if cur == nil {
		return
	}
	for _, e := range *cur {
		e.fn(name)
	}
}
