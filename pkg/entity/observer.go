package entity

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lukas4311/WpfValidation/pkg/notify"
)

type (
	Notification = notify.Notification
	Kind         = notify.Kind
)

const (
	PropertyChanging       = notify.PropertyChanging
	PropertyChanged        = notify.PropertyChanged
	ErrorsChanged          = notify.ErrorsChanged
	ValidationStateChanged = notify.ValidationStateChanged
)

// Observer receives the notifications of an entity.
type Observer interface {
	Notify(n Notification)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(n Notification)

func (f ObserverFunc) Notify(n Notification) { f(n) }

type observerEntry struct {
	id uint64
	o  Observer
}

type observers struct {
	mu      sync.Mutex
	entries atomic.Pointer[[]observerEntry]
	nextID  uint64
}

func (l *observers) add(o Observer) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	var cur []observerEntry
	if p := l.entries.Load(); p != nil {
		cur = *p
	}
	next := append(slices.Clip(cur), observerEntry{id: id, o: o})
	l.entries.Store(&next)

	var once sync.Once
	return func() { once.Do(func() { l.remove(id) }) }
}

func (l *observers) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.entries.Load()
	if p == nil {
		return
	}
	next := slices.DeleteFunc(slices.Clone(*p), func(e observerEntry) bool { return e.id == id })
	l.entries.Store(&next)
}

func (l *observers) notify(n Notification) {
	p := l.entries.Load()
	if p == nil {
		return
	}
	for _, e := range *p {
		e.o.Notify(n)
	}
}
