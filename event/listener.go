package event

import "context"

// Listener handles events.
type Listener interface {
	// Handle processes an event. Returning an error stops synchronous
	// dispatch for the remaining listeners; ErrStopPropagation stops
	// propagation without being treated as an error.
	Handle(ctx context.Context, event Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, event Event) error

// Handle implements Listener.
func (f ListenerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}
