package retry

import "time"

type config struct {
	maxAttempts int
	timeout     time.Duration
	backoff     BackoffFunc
	retryIf     func(error) bool
}

func defaultConfig() *config {
	return &config{
		maxAttempts: 3,
		backoff:     ExponentialBackoff(100*time.Millisecond, 5*time.Second),
	}
}

// Option customizes a retry run.
type Option func(*config)

// WithMaxAttempts sets the total number of attempts (first try included).
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithTimeout bounds each single attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithBackoff sets the delay strategy between attempts.
func WithBackoff(fn BackoffFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.backoff = fn
		}
	}
}

// WithRetryIf retries only while the predicate returns true; other errors
// stop the run immediately.
func WithRetryIf(predicate func(error) bool) Option {
	return func(c *config) { c.retryIf = predicate }
}
