package retry

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/saltfishpr/retrier/clock"
	"github.com/saltfishpr/retrier/random"
)

const (
	defaultRetryDelay    = 50 * time.Millisecond
	defaultTimeout       = time.Second
	defaultFactor        = 2
	defaultMaxRetryDelay = 2 * time.Minute
	defaultMaxJitter     = 50 * time.Millisecond
)

type retryOptions struct {
	maxRetryCount int // <= 0 means unbounded
	retryDelay    time.Duration
	timeout       time.Duration // <= 0 means no timeout
	backoff       bool
	factor        float64
	minRetryDelay time.Duration
	maxRetryDelay time.Duration // <= 0 means no ceiling
	jitter        bool
	minJitter     time.Duration
	maxJitter     time.Duration
	jitterSeed    string

	retryStrategy RetryStrategy
	onError       func(err error, attempt int) bool
	shouldRetry   func(err error) bool
	recoverPanics bool

	clock    clock.Clock
	logger   zerolog.Logger
	observer Observer
}

func defaultOptions() retryOptions {
	return retryOptions{
		retryDelay:    defaultRetryDelay,
		timeout:       defaultTimeout,
		factor:        defaultFactor,
		maxRetryDelay: defaultMaxRetryDelay,
		maxJitter:     defaultMaxJitter,
		clock:         clock.Wall,
		logger:        zerolog.Nop(),
		observer:      nopObserver{},
	}
}

type RetryOption func(*retryOptions)

// WithMaxRetryCount caps the number of attempts. n <= 0 removes the cap.
func WithMaxRetryCount(n int) RetryOption {
	return func(opts *retryOptions) {
		opts.maxRetryCount = n
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) RetryOption {
	return func(opts *retryOptions) {
		opts.retryDelay = d
	}
}

// WithTimeout sets the wall-clock budget of the session, measured from the
// first attempt. d <= 0 disables the timeout.
func WithTimeout(d time.Duration) RetryOption {
	return func(opts *retryOptions) {
		opts.timeout = d
	}
}

// WithBackoff enables or disables exponential growth of the delay.
func WithBackoff(enabled bool) RetryOption {
	return func(opts *retryOptions) {
		opts.backoff = enabled
	}
}

// WithFactor sets the exponential base used when backoff is enabled.
func WithFactor(factor float64) RetryOption {
	return func(opts *retryOptions) {
		opts.factor = factor
	}
}

// WithMinRetryDelay sets the floor of the computed delay. When backoff is
// enabled and d is non-zero, d also replaces the retry delay as the base of
// the exponential growth.
func WithMinRetryDelay(d time.Duration) RetryOption {
	return func(opts *retryOptions) {
		opts.minRetryDelay = d
	}
}

// WithMaxRetryDelay sets the ceiling of the computed delay. d <= 0 removes
// the ceiling.
func WithMaxRetryDelay(d time.Duration) RetryOption {
	return func(opts *retryOptions) {
		opts.maxRetryDelay = d
	}
}

// WithJitter enables adding a random delay in [min, max], drawn in whole
// milliseconds.
func WithJitter(min, max time.Duration) RetryOption {
	return func(opts *retryOptions) {
		opts.jitter = true
		opts.minJitter = min
		opts.maxJitter = max
	}
}

// WithJitterSeed makes the jitter sequence reproducible. The draw for attempt
// n is seeded with seed followed by the decimal attempt number.
func WithJitterSeed(seed string) RetryOption {
	return func(opts *retryOptions) {
		opts.jitterSeed = seed
	}
}

// WithRetryStrategy replaces the built-in base delay computation. Jitter and
// the min/max clamp are still applied on top of the strategy's value.
func WithRetryStrategy(strategy RetryStrategy) RetryOption {
	return func(opts *retryOptions) {
		opts.retryStrategy = strategy
	}
}

// WithOnErrorFunc registers a hook called with every failure. Returning true
// ends the session immediately with a zero result and a nil error.
func WithOnErrorFunc(fn func(err error, attempt int) bool) RetryOption {
	return func(opts *retryOptions) {
		opts.onError = fn
	}
}

// WithShouldRetryFunc registers a filter consulted after the OnError hook.
// Returning false ends the session with the operation's error, unchanged.
func WithShouldRetryFunc(fn func(err error) bool) RetryOption {
	return func(opts *retryOptions) {
		opts.shouldRetry = fn
	}
}

// WithRecoverPanics makes a panicking operation count as a failed attempt.
// The panic is reported as a *routine.RecoveredError.
func WithRecoverPanics() RetryOption {
	return func(opts *retryOptions) {
		opts.recoverPanics = true
	}
}

func WithClock(c clock.Clock) RetryOption {
	return func(opts *retryOptions) {
		if c != nil {
			opts.clock = c
		}
	}
}

func WithLogger(logger zerolog.Logger) RetryOption {
	return func(opts *retryOptions) {
		opts.logger = logger
	}
}

func WithObserver(o Observer) RetryOption {
	return func(opts *retryOptions) {
		if o != nil {
			opts.observer = o
		}
	}
}

func (o *retryOptions) strategy() RetryStrategy {
	if o.retryStrategy != nil {
		return o.retryStrategy
	}
	if o.backoff {
		base := o.minRetryDelay
		if base == 0 {
			base = o.retryDelay
		}
		return ExponentialBackoff(base, o.factor)
	}
	return FixedBackoff(o.retryDelay)
}

// jitterAt draws the jitter for attempt. now seeds the draw when no jitter
// seed is configured.
func (o *retryOptions) jitterAt(attempt int, now time.Time) time.Duration {
	if !o.jitter {
		return 0
	}
	var g random.Generator
	if o.jitterSeed != "" {
		g = random.NewFromString(o.jitterSeed + strconv.Itoa(attempt))
	} else {
		g = random.NewFromTime(now)
	}
	ms := g.IntBetween(
		float64(o.minJitter)/float64(time.Millisecond),
		float64(o.maxJitter)/float64(time.Millisecond),
	)
	return time.Duration(ms) * time.Millisecond
}

func (o *retryOptions) clamp(d time.Duration) time.Duration {
	lo, hi := o.minRetryDelay, o.maxRetryDelay
	if lo < 0 {
		lo = 0
	}
	if hi <= 0 {
		hi = maxDuration
	}
	if d < lo {
		d = lo
	}
	if d > hi {
		d = hi
	}
	return d
}

// delayAt computes the pause after the failed attempt number attempt.
func (o *retryOptions) delayAt(attempt int, now time.Time) time.Duration {
	d := o.strategy().NextBackoff(attempt)
	if j := o.jitterAt(attempt, now); j != 0 {
		if j > 0 && d > maxDuration-j {
			d = maxDuration
		} else {
			d += j
		}
	}
	return o.clamp(d)
}
