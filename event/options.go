package event

// listenerEntry is one subscription.
type listenerEntry struct {
	id       uint64 // unique id, for unsubscribing
	listener Listener
	priority int  // lower runs first
	async    bool // run on the pool even under synchronous dispatch
	once     bool // auto-unsubscribe after the first delivery
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*listenerEntry)

// WithPriority sets the listener priority. Lower values run first;
// default is 0.
func WithPriority(priority int) SubscribeOption {
	return func(e *listenerEntry) {
		e.priority = priority
	}
}

// WithAsync marks the listener asynchronous: it runs on the pool even when
// the event is dispatched synchronously, and its errors do not affect
// propagation.
func WithAsync() SubscribeOption {
	return func(e *listenerEntry) {
		e.async = true
	}
}

// WithOnce delivers at most once, then unsubscribes.
func WithOnce() SubscribeOption {
	return func(e *listenerEntry) {
		e.once = true
	}
}

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*dispatcher)

// WithPoolSize sets the async goroutine pool size.
func WithPoolSize(size int) DispatcherOption {
	return func(d *dispatcher) {
		d.poolSize = size
	}
}

// WithSetAllSync forces every delivery to run synchronously, ignoring async
// options. Useful in tests.
func WithSetAllSync(v bool) DispatcherOption {
	return func(d *dispatcher) {
		d.setAllSync = v
	}
}
