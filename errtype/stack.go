package errtype

import (
	"runtime"

	"github.com/pkg/errors"
)

const stackDepth = 16

type (
	StackTrace = errors.StackTrace
	Frame      = errors.Frame
)

type stack []uintptr

// capture records the program counters of the caller, skipping skip frames
// above the function that called capture.
func capture(skip int) stack {
	if skip < 0 {
		skip = 0
	}
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// StackTrace 兼容 pkg/errors 包.
func (s stack) StackTrace() StackTrace {
	frames := make(StackTrace, len(s))
	for i, pc := range s {
		frames[i] = Frame(pc)
	}
	return frames
}
