package notify_test

import (
	"context"
	"encoding/json"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/pkg/notify"
)

func sample(kind notify.Kind, property string) notify.Notification {
	return notify.Notification{
		EntityID: uuid.New(),
		Kind:     kind,
		Property: property,
		At:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryBroadcaster(t *testing.T) {
	t.Parallel()

	t.Run("fans out to every subscriber", func(t *testing.T) {
		t.Parallel()
		b := notify.NewMemoryBroadcaster(4)
		defer b.Close()

		s1, err := b.Subscribe(context.Background())
		require.NoError(t, err)
		s2, err := b.Subscribe(context.Background())
		require.NoError(t, err)

		n := sample(notify.ErrorsChanged, "ValidTo")
		require.NoError(t, b.Publish(context.Background(), n))

		assert.Equal(t, n, <-s1.C())
		assert.Equal(t, n, <-s2.C())
	})

	t.Run("drops for full subscribers without blocking", func(t *testing.T) {
		t.Parallel()
		b := notify.NewMemoryBroadcaster(1)
		defer b.Close()

		sub, err := b.Subscribe(context.Background())
		require.NoError(t, err)

		require.NoError(t, b.Publish(context.Background(), sample(notify.PropertyChanged, "A")))
		require.NoError(t, b.Publish(context.Background(), sample(notify.PropertyChanged, "B")))

		assert.Equal(t, "A", (<-sub.C()).Property)
		assert.Equal(t, uint64(1), b.Dropped())
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()
		b := notify.NewMemoryBroadcaster(1)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub, err := b.Subscribe(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, b.Subscribers())

		cancel()
		require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, time.Millisecond)
		_, open := <-sub.C()
		assert.False(t, open)
	})

	t.Run("close ends subscriptions", func(t *testing.T) {
		t.Parallel()
		b := notify.NewMemoryBroadcaster(1)
		sub, err := b.Subscribe(context.Background())
		require.NoError(t, err)

		require.NoError(t, b.Close())
		require.NoError(t, b.Close())
		require.NoError(t, sub.Close())

		_, open := <-sub.C()
		assert.False(t, open)
		assert.ErrorIs(t, b.Publish(context.Background(), sample(notify.ErrorsChanged, "A")), notify.ErrClosed)
		_, err = b.Subscribe(context.Background())
		assert.ErrorIs(t, err, notify.ErrClosed)
	})
}

// Not parallel: it counts goroutines.
func TestMemoryBroadcaster_ClosedSubscriptionsReleaseWatchers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	before := runtime.NumGoroutine()

	b := notify.NewMemoryBroadcaster(1)
	for range 20 {
		sub, err := b.Subscribe(ctx)
		require.NoError(t, err)
		require.NoError(t, sub.Close())
	}
	for range 20 {
		_, err := b.Subscribe(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, b.Close())

	assert.Zero(t, b.Subscribers())
	require.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, time.Second, 5*time.Millisecond)
}

func TestNotification_JSON(t *testing.T) {
	t.Parallel()

	n := sample(notify.ValidationStateChanged, "")
	n.Running = true
	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"validation_state_changed"`)
	assert.NotContains(t, string(data), `"property"`)

	var back notify.Notification
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, n, back)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"exploded"}`), &back), notify.ErrUnknownKind)
	_, err = json.Marshal(notify.Notification{Kind: notify.Kind(42)})
	assert.ErrorIs(t, err, notify.ErrUnknownKind)
	assert.Equal(t, "kind(42)", notify.Kind(42).String())
}
