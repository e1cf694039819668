package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/pkg/logger"
	"github.com/lukas4311/WpfValidation/pkg/notify"
)

// relayedBroadcaster delivers each notification after a delay, like a
// pub/sub relay does.
type relayedBroadcaster struct {
	*notify.MemoryBroadcaster
	delay time.Duration
}

func (b *relayedBroadcaster) Publish(ctx context.Context, n notify.Notification) error {
	go func() {
		time.Sleep(b.delay)
		_ = b.MemoryBroadcaster.Publish(ctx, n)
	}()
	return nil
}

func TestWatch_DrainsRelayedNotifications(t *testing.T) {
	errOut := &bytes.Buffer{}
	a := &app{
		log:    logger.Discard(),
		flags:  rootFlags{watch: true},
		out:    &bytes.Buffer{},
		errOut: errOut,
		stop:   func() {},
		broadcaster: &countingBroadcaster{Broadcaster: &relayedBroadcaster{
			MemoryBroadcaster: notify.NewMemoryBroadcaster(16),
			delay:             50 * time.Millisecond,
		}},
	}
	ctx := context.Background()
	require.NoError(t, a.watch(ctx))

	id := uuid.New()
	for _, n := range []notify.Notification{
		{EntityID: id, Kind: notify.ValidationStateChanged, Running: true},
		{EntityID: id, Kind: notify.ErrorsChanged, Property: "ValidFrom"},
		{EntityID: id, Kind: notify.ValidationStateChanged, Running: false},
	} {
		require.NoError(t, a.broadcaster.Publish(ctx, n))
	}

	require.NoError(t, a.finish())
	out := errOut.String()
	assert.Equal(t, 3, strings.Count(out, "notification: "))
	assert.Contains(t, out, "notification: validation_state_changed running=false")
	assert.Contains(t, out, "notification: errors_changed ValidFrom")
}
