package retry

import (
	"math"
	"time"
)

const maxDuration = time.Duration(math.MaxInt64)

type RetryStrategy interface {
	// attempt is the number of attempts made so far, starting from 1
	NextBackoff(attempt int) time.Duration
}

type fixedBackoff time.Duration

func FixedBackoff(d time.Duration) fixedBackoff {
	return fixedBackoff(d)
}

func (f fixedBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(f)
}

type linearBackoff time.Duration

func LinearBackoff(d time.Duration) linearBackoff {
	return linearBackoff(d)
}

func (l linearBackoff) NextBackoff(attempt int) time.Duration {
	return saturate(float64(l) * float64(attempt))
}

type exponentialBackoff struct {
	baseDuration time.Duration
	factor       float64
}

// ExponentialBackoff returns baseDuration * factor^attempt. The first retry
// therefore already waits baseDuration * factor.
func ExponentialBackoff(baseDuration time.Duration, factor float64) *exponentialBackoff {
	return &exponentialBackoff{
		baseDuration: baseDuration,
		factor:       factor,
	}
}

func (e *exponentialBackoff) NextBackoff(attempt int) time.Duration {
	return saturate(float64(e.baseDuration) * math.Pow(e.factor, float64(attempt)))
}

// saturate converts f to a Duration, pinning values outside the representable
// range to 0 or maxDuration.
func saturate(f float64) time.Duration {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(maxDuration):
		return maxDuration
	}
	return time.Duration(f)
}
