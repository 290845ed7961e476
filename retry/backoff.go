package retry

import (
	"math/rand"
	"time"
)

// BackoffFunc returns the delay before the next attempt; attempt starts at 1.
type BackoffFunc func(attempt int) time.Duration

// ConstantBackoff waits the same delay between attempts.
func ConstantBackoff(delay time.Duration) BackoffFunc {
	return func(int) time.Duration { return delay }
}

// ExponentialBackoff doubles the delay per attempt, capped at max, with up
// to 25% jitter to avoid retry storms.
func ExponentialBackoff(base, max time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		delay := base
		for i := 1; i < attempt; i++ {
			delay *= 2
			if delay >= max {
				delay = max
				break
			}
		}

		jitter := time.Duration(rand.Int63n(int64(delay)/4 + 1))
		if delay+jitter > max {
			return max
		}
		return delay + jitter
	}
}

// NoBackoff retries immediately.
func NoBackoff() BackoffFunc {
	return func(int) time.Duration { return 0 }
}
