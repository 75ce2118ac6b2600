package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/simreport/internal/domain/ports"
)

func TestConnectionManager(t *testing.T) {
	t.Run("register and unregister connection", func(t *testing.T) {
		cm := NewConnectionManager(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go cm.Run(ctx)

		send := make(chan ports.UpdateEvent, 1)
		cm.RegisterConnection(&Connection{ID: "client-1", Send: send})
		require.Eventually(t, func() bool { return cm.Count() == 1 }, time.Second, 5*time.Millisecond)

		cm.Unregister("client-1")
		require.Eventually(t, func() bool { return cm.Count() == 0 }, time.Second, 5*time.Millisecond)

		_, ok := <-send
		assert.False(t, ok, "send channel should be closed")
	})

	t.Run("broadcast to connections", func(t *testing.T) {
		cm := NewConnectionManager(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go cm.Run(ctx)

		receivers := make([]chan ports.UpdateEvent, 3)
		for i := range receivers {
			receivers[i] = make(chan ports.UpdateEvent, 1)
			cm.RegisterConnection(&Connection{ID: string(rune('a' + i)), Send: receivers[i]})
		}

		event := ports.UpdateEvent{Type: ports.EventTypeReload, Timestamp: time.Now()}
		cm.Broadcast(event)

		for i, receiver := range receivers {
			select {
			case received := <-receiver:
				assert.Equal(t, event.Type, received.Type)
			case <-time.After(time.Second):
				t.Errorf("Connection %d did not receive event", i)
			}
		}
	})

	t.Run("slow client is dropped", func(t *testing.T) {
		cm := NewConnectionManager(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go cm.Run(ctx)

		slow := make(chan ports.UpdateEvent)
		cm.RegisterConnection(&Connection{ID: "slow", Send: slow})
		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})

		require.Eventually(t, func() bool { return cm.Count() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("close all connections", func(t *testing.T) {
		cm := NewConnectionManager(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go cm.Run(ctx)

		for i := 0; i < 5; i++ {
			cm.RegisterConnection(&Connection{ID: string(rune('a' + i)), Send: make(chan ports.UpdateEvent, 1)})
		}
		require.Eventually(t, func() bool { return cm.Count() == 5 }, time.Second, 5*time.Millisecond)

		cm.CloseAll()
		assert.Equal(t, 0, cm.Count())
	})

	t.Run("calls after shutdown do not block", func(t *testing.T) {
		cm := NewConnectionManager(nil)
		ctx, cancel := context.WithCancel(context.Background())

		stopped := make(chan struct{})
		go func() {
			cm.Run(ctx)
			close(stopped)
		}()
		cancel()
		<-stopped

		cm.RegisterConnection(&Connection{ID: "late", Send: make(chan ports.UpdateEvent, 1)})
		cm.Unregister("late")
		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
	})
}
