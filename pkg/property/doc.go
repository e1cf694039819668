// Package property provides a concurrency-safe bag of named values with
// before/after change notifications.
//
// A Store knows nothing about validation. It compares every write against the
// stored value and only reports a change (and only fires handlers) when the
// value actually differs. An absent name reads as nil, and nil, typed nil
// pointers, maps and slices all compare equal to an absent value.
//
// # Usage
//
//	s := property.NewStore()
//	cancel := s.OnChanged(func(name string) {
//	    fmt.Println("changed:", name)
//	})
//	defer cancel()
//
//	s.Set("Name", "Alice")          // true, prints "changed: Name"
//	s.Set("Name", "Alice")          // false, nothing printed
//	name := property.Value[string](s, "Name")
//
// Handlers run synchronously on the goroutine that called Set, outside of the
// store lock, so they are free to read or write the store themselves.
package property
