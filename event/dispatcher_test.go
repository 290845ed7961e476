package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_SubscribeAndDispatch(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var handled int32
	d.Subscribe("product.updated", ListenerFunc(func(ctx context.Context, e Event) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}))

	err := d.Dispatch(context.Background(), NewEvent("product.updated"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&handled))

	// Unrelated event does not reach the listener.
	require.NoError(t, d.Dispatch(context.Background(), NewEvent("user.updated")))
	assert.Equal(t, int32(1), atomic.LoadInt32(&handled))
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var handled int32
	unsub := d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}))

	assert.Equal(t, 1, d.ListenerCount("x"))
	unsub()
	assert.Equal(t, 0, d.ListenerCount("x"))

	require.NoError(t, d.Dispatch(context.Background(), NewEvent("x")))
	assert.Equal(t, int32(0), atomic.LoadInt32(&handled))
}

func TestDispatcher_Priority(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var order []string
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	}), WithPriority(10))
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		order = append(order, "first")
		return nil
	}), WithPriority(1))

	require.NoError(t, d.Dispatch(context.Background(), NewEvent("x")))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcher_StopPropagation(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var reached bool
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		return ErrStopPropagation
	}), WithPriority(1))
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		reached = true
		return nil
	}), WithPriority(2))

	err := d.Dispatch(context.Background(), NewEvent("x"))
	assert.NoError(t, err, "stop propagation is not an error")
	assert.False(t, reached)
}

func TestDispatcher_ListenerError(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	boom := errors.New("boom")
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		return boom
	}))

	err := d.Dispatch(context.Background(), NewEvent("x"))
	assert.ErrorIs(t, err, boom)
}

func TestDispatcher_Once(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var handled int32
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}), WithOnce())

	require.NoError(t, d.Dispatch(context.Background(), NewEvent("x")))
	require.NoError(t, d.Dispatch(context.Background(), NewEvent("x")))
	assert.Equal(t, int32(1), atomic.LoadInt32(&handled))
	assert.Equal(t, 0, d.ListenerCount("x"))
}

func TestDispatcher_DispatchAsync(t *testing.T) {
	d := NewDispatcher(WithPoolSize(4))
	defer d.Close()

	done := make(chan struct{})
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		close(done)
		return nil
	}))

	d.DispatchAsync(context.Background(), NewEvent("x"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async dispatch never delivered")
	}
}

func TestDispatcher_Interceptor(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var seen []string
	d.Use(func(ctx context.Context, e Event, next Next) error {
		seen = append(seen, "before")
		err := next(ctx, e)
		seen = append(seen, "after")
		return err
	})
	d.Subscribe("x", ListenerFunc(func(ctx context.Context, e Event) error {
		seen = append(seen, "listener")
		return nil
	}))

	require.NoError(t, d.Dispatch(context.Background(), NewEvent("x")))
	assert.Equal(t, []string{"before", "listener", "after"}, seen)
}

func TestBaseEvent(t *testing.T) {
	e := NewEvent("product.updated")
	assert.Equal(t, "product.updated", e.Name())
	assert.NotEmpty(t, e.ID())
	assert.False(t, e.OccurredAt().IsZero())
	assert.NotEqual(t, e.ID(), NewEvent("product.updated").ID())
}
