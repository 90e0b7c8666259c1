package retry

import "time"

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeAborted: the OnError hook returned true.
	OutcomeAborted
	// OutcomeNotRetryable: the ShouldRetry hook returned false.
	OutcomeNotRetryable
	OutcomeRetryLimitReached
	OutcomeTimeout
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeAborted:
		return "aborted"
	case OutcomeNotRetryable:
		return "not_retryable"
	case OutcomeRetryLimitReached:
		return "retry_limit_reached"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Observer receives the events of a session. Methods are called synchronously
// from the goroutine running the session and should not block.
type Observer interface {
	// OnAttempt is called right before the operation is invoked.
	OnAttempt(attempt int)
	// OnFailure is called when the operation returns an error, before any hook.
	OnFailure(attempt int, err error)
	// OnRetry is called before suspending for delay.
	OnRetry(attempt int, delay time.Duration)
	// OnDone is called once when the session ends.
	OnDone(outcome Outcome, attempts int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) OnAttempt(int)                      {}
func (nopObserver) OnFailure(int, error)               {}
func (nopObserver) OnRetry(int, time.Duration)         {}
func (nopObserver) OnDone(Outcome, int, time.Duration) {}
