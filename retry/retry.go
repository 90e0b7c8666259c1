package retry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/saltfishpr/retrier/clock"
	"github.com/saltfishpr/retrier/routine"
)

// Do calls f until it succeeds, the retry limit is reached, the timeout
// elapses or ctx is done.
//
// The result is one of:
//   - f's value and a nil error, on success;
//   - a zero value and a nil error, if the OnError hook asked to stop;
//   - a zero value and f's error, if the ShouldRetry hook rejected it;
//   - a zero value and an *errtype.Error of kind KindRetryLimitReached,
//     KindTimeout or KindCanceled.
func Do[T any](ctx context.Context, f func() (T, error), options ...RetryOption) (T, error) {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}

	s := &session{opts: &opts, start: opts.clock.Now()}
	s.deadline = s.start.Add(opts.timeout)
	s.logStart()

	var zero T
	var lastErr error
	for {
		// 执行前检查 Context 是否已取消
		if err := ctx.Err(); err != nil {
			return zero, s.canceled(err, lastErr)
		}

		s.attempt++
		opts.logger.Debug().Int("attempt", s.attempt).Msg("retry attempt")
		opts.observer.OnAttempt(s.attempt)

		var result T
		var err error
		if opts.recoverPanics {
			result, err = routine.Call(f)
		} else {
			result, err = f()
		}
		if err == nil {
			s.done(OutcomeSuccess)
			opts.logger.Debug().Int("attempt", s.attempt).Msg("retry succeeded")
			return result, nil
		}
		lastErr = err

		opts.logger.Warn().Err(err).Int("attempt", s.attempt).Msg("retry attempt failed")
		opts.observer.OnFailure(s.attempt, err)

		if opts.onError != nil && opts.onError(err, s.attempt) {
			s.done(OutcomeAborted)
			opts.logger.Debug().Int("attempt", s.attempt).Msg("retry aborted by error hook")
			return zero, nil
		}
		if opts.shouldRetry != nil && !opts.shouldRetry(err) {
			s.done(OutcomeNotRetryable)
			return zero, err
		}
		if err := s.checkRetryLimit(err); err != nil {
			return zero, err
		}
		now := opts.clock.Now()
		if err := s.checkTimeout(now, err); err != nil {
			return zero, err
		}

		delay := opts.delayAt(s.attempt, now)
		opts.logger.Debug().
			Int("attempt", s.attempt).
			Bool("backoff", opts.backoff).
			Bool("jitter", opts.jitter).
			Dur("min", opts.minRetryDelay).
			Dur("max", opts.maxRetryDelay).
			Dur("delay", delay).
			Msg("retry sleeping")
		opts.observer.OnRetry(s.attempt, delay)

		if err := clock.Sleep(ctx, opts.clock, delay); err != nil {
			return zero, s.canceled(err, lastErr)
		}
	}
}

// Result is the outcome of a session started with Go.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs Do on a new goroutine. The returned channel receives exactly one
// Result and is never closed.
func Go[T any](ctx context.Context, f func() (T, error), options ...RetryOption) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		v, err := Do(ctx, f, options...)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// session is the transient state of one Do call.
type session struct {
	opts     *retryOptions
	attempt  int
	start    time.Time
	deadline time.Time // fixed at start, only meaningful when opts.timeout > 0
}

func (s *session) elapsed() time.Duration {
	return s.opts.clock.Now().Sub(s.start)
}

func (s *session) done(outcome Outcome) {
	s.opts.observer.OnDone(outcome, s.attempt, s.elapsed())
}

func (s *session) logStart() {
	e := s.opts.logger.Debug().Time("start", s.start)
	if s.opts.timeout > 0 {
		e = e.Time("deadline", s.deadline)
	}
	if s.opts.maxRetryCount > 0 {
		e = e.Int("max_retry_count", s.opts.maxRetryCount)
	}
	e.Msg("retry starting")
}

func (s *session) checkRetryLimit(lastErr error) error {
	if s.opts.maxRetryCount <= 0 || s.attempt < s.opts.maxRetryCount {
		return nil
	}
	s.done(OutcomeRetryLimitReached)
	err := newRetryLimitReachedError(
		fmt.Sprintf("retry limit reached (tried %d times; max is %d)", s.attempt, s.opts.maxRetryCount),
		lastErr,
	).
		WithDetail(DetailAttempts, strconv.Itoa(s.attempt)).
		WithDetail(DetailMaxRetryCount, strconv.Itoa(s.opts.maxRetryCount))
	s.opts.logger.Error().Err(err).Msg("retry gave up")
	return err
}

func (s *session) checkTimeout(now time.Time, lastErr error) error {
	if s.opts.timeout <= 0 || !now.After(s.deadline) {
		return nil
	}
	elapsed := now.Sub(s.start)
	s.done(OutcomeTimeout)
	err := newTimeoutError(
		fmt.Sprintf("retry timeout of %s exceeded (total elapsed time: %s)", s.opts.timeout, elapsed),
		lastErr,
	).
		WithDetail(DetailAttempts, strconv.Itoa(s.attempt)).
		WithDetail(DetailTimeout, s.opts.timeout.String()).
		WithDetail(DetailElapsed, elapsed.String())
	s.opts.logger.Error().Err(err).Msg("retry gave up")
	return err
}

func (s *session) canceled(ctxErr, lastErr error) error {
	s.done(OutcomeCanceled)
	e := newCanceledError(fmt.Sprintf("retry canceled after %d attempts", s.attempt), ctxErr).
		WithDetail(DetailAttempts, strconv.Itoa(s.attempt))
	if lastErr != nil {
		e = e.WithDetail(DetailLastError, lastErr.Error())
	}
	return e
}
