package property_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/pkg/property"
)

func TestStore_Set(t *testing.T) {
	t.Parallel()

	t.Run("reports change and fires handlers in order", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		var events []string
		s.OnChanging(func(name string) {
			events = append(events, "changing:"+name+":"+toString(s.Get(name)))
		})
		s.OnChanged(func(name string) {
			events = append(events, "changed:"+name+":"+toString(s.Get(name)))
		})

		assert.True(t, s.Set("Name", "Alice"))
		assert.Equal(t, []string{"changing:Name:", "changed:Name:Alice"}, events)
	})

	t.Run("equal value is a no-op", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		calls := 0
		s.OnChanging(func(string) { calls++ })
		s.OnChanged(func(string) { calls++ })

		require.True(t, s.Set("Count", 3))
		require.Equal(t, 2, calls)

		assert.False(t, s.Set("Count", 3))
		assert.Equal(t, 2, calls, "second equal set must not notify")
	})

	t.Run("nil on a missing name is unchanged", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		assert.False(t, s.Set("ValidFrom", nil))
		var typedNil *time.Time
		assert.False(t, s.Set("ValidFrom", typedNil))
		assert.False(t, s.Has("ValidFrom"))
	})

	t.Run("setting nil removes the value", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		require.True(t, s.Set("Name", "x"))
		assert.True(t, s.Set("Name", nil))
		assert.False(t, s.Has("Name"))
		assert.Nil(t, s.Get("Name"))
	})

	t.Run("times compare by instant", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		utc := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
		require.True(t, s.Set("ValidTo", utc))
		assert.False(t, s.Set("ValidTo", utc.In(time.FixedZone("CET", 3600))))
	})

	t.Run("slices compare by content", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		require.True(t, s.Set("Tags", []string{"a", "b"}))
		assert.False(t, s.Set("Tags", []string{"a", "b"}))
		assert.True(t, s.Set("Tags", []string{"b", "a"}))
	})

	t.Run("handler may write the store", func(t *testing.T) {
		t.Parallel()
		s := property.NewStore()

		s.OnChanged(func(name string) {
			if name == "Result" {
				s.Set("ResultVisible", property.Value[string](s, "Result") != "")
			}
		})

		s.Set("Result", "done")
		assert.True(t, property.Value[bool](s, "ResultVisible"))
	})
}

func TestStore_HandlerCancel(t *testing.T) {
	t.Parallel()
	s := property.NewStore()

	calls := 0
	cancel := s.OnChanged(func(string) { calls++ })
	s.Set("A", 1)
	cancel()
	cancel()
	s.Set("A", 2)

	assert.Equal(t, 1, calls)
}

func TestValue(t *testing.T) {
	t.Parallel()
	s := property.NewStore()
	s.Set("Age", 42)

	assert.Equal(t, 42, property.Value[int](s, "Age"))
	assert.Equal(t, "", property.Value[string](s, "Age"), "type mismatch yields zero")
	assert.Equal(t, 0, property.Value[int](s, "Missing"))

	_, ok := property.Lookup[int](s, "Missing")
	assert.False(t, ok)
}

func TestStore_SnapshotAndNames(t *testing.T) {
	t.Parallel()
	s := property.NewStore()
	s.Set("B", 2)
	s.Set("A", 1)

	snap := s.Snapshot()
	s.Set("A", 10)

	assert.Equal(t, map[string]any{"A": 1, "B": 2}, snap)
	assert.Equal(t, []string{"A", "B"}, s.Names())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	s := property.NewStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("Counter", i)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = property.Value[int](s, "Counter")
		}()
	}
	wg.Wait()

	assert.True(t, s.Has("Counter"))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	var nilMap map[string]int
	assert.True(t, property.Equal(nil, nilMap))
	assert.False(t, property.Equal(1, int64(1)))
	assert.True(t, property.Equal(map[string]int{"a": 1}, map[string]int{"a": 1}))
	assert.False(t, property.Equal("a", nil))
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
