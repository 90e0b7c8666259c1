package retry

import (
	"github.com/saltfishpr/retrier/errtype"
)

// Kinds of the errors returned by Do when a session gives up.
const (
	KindRetryLimitReached errtype.Kind = "RetryLimitReachedError"
	KindTimeout           errtype.Kind = "RetryTimeoutError"
	KindCanceled          errtype.Kind = "RetryCanceledError"
)

// Sentinels for errors.Is. Every error returned by Do for a given kind matches
// the sentinel of that kind.
var (
	ErrRetryLimitReached = errtype.New(KindRetryLimitReached, "retry limit reached")
	ErrTimeout           = errtype.New(KindTimeout, "retry timeout exceeded")
	ErrCanceled          = errtype.New(KindCanceled, "retry canceled")
)

var (
	newRetryLimitReachedError = errtype.Type(KindRetryLimitReached)
	newTimeoutError           = errtype.Type(KindTimeout)
	newCanceledError          = errtype.Type(KindCanceled)
)

// Detail keys set on the errors returned by Do.
const (
	DetailAttempts      = "attempts"
	DetailMaxRetryCount = "max_retry_count"
	DetailTimeout       = "timeout"
	DetailElapsed       = "elapsed"
	DetailLastError     = "last_error"
)

func IsRetryLimitReached(err error) bool {
	return errtype.Is(err, KindRetryLimitReached)
}

func IsTimeout(err error) bool {
	return errtype.Is(err, KindTimeout)
}

func IsCanceled(err error) bool {
	return errtype.Is(err, KindCanceled)
}
