package event

import "context"

// Next continues with the next interceptor or the listeners.
type Next func(ctx context.Context, event Event) error

// Interceptor wraps event dispatch, for logging, filtering or error
// handling.
type Interceptor func(ctx context.Context, event Event, next Next) error
