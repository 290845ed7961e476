package cache

import "time"

// Clock supplies the current time for all freshness decisions. Injectable so
// tests can move time deterministically instead of sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock is the default wall-clock time source.
var SystemClock Clock = systemClock{}
