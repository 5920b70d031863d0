package Assert

import (
	"fmt"
	"runtime"
	"sync"
)

// Failure is the diagnostic carried by a misuse or invariant failure:
// the source location of the failed check, the sentinel error naming the
// violated rule, and a formatted message with the concrete state.
type Failure struct {
	File    string
	Line    int
	Err     error
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s:%d: %v: %s", f.File, f.Line, f.Err, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Handler intercepts failures instead of letting them panic. Test
// harnesses install one to observe that misuse is detected; production
// code leaves it unset so a failure takes the process down.
type Handler func(*Failure)

var (
	handlerMu sync.RWMutex
	handler   Handler
)

// SetHandler installs h as the process-wide failure handler and returns
// the previous one, so tests can restore it. Passing nil restores the
// default fatal behavior.
func SetHandler(h Handler) Handler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := handler
	handler = h
	return prev
}

// Fail reports a failed check. When a handler is installed it is invoked
// and Fail returns, so the failing operation can back out with state
// unchanged. Without a handler the failure is raised as a panic carrying
// the *Failure.
func Fail(err error, format string, args ...interface{}) {
	failAt(2, err, format, args...)
}

// Check verifies expr and reports a failure when it is false, with the
// same handler-or-panic behavior as Fail.
func Check(expr bool, err error, format string, args ...interface{}) {
	if expr {
		return
	}
	failAt(2, err, format, args...)
}

func failAt(skip int, err error, format string, args ...interface{}) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "unknown", 0
	}
	f := &Failure{
		File:    file,
		Line:    line,
		Err:     err,
		Message: fmt.Sprintf(format, args...),
	}

	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()

	if h != nil {
		h(f)
		return
	}
	panic(f)
}
