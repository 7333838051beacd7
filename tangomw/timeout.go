package tangomw

import (
	"errors"
	"time"

	"tango/middleware"
)

// ErrTimeout is returned by Timeout when next() doesn't complete within the
// configured duration. The stage's own goroutine is not canceled: the
// timeout only governs when the caller stops waiting, not whether the
// handler keeps running.
var ErrTimeout = errors.New("tango: request timed out")

// Timeout enforces a maximum duration for the rest of the chain.
func Timeout[T any](d time.Duration) middleware.Stage[T] {
	return func(ctx T, next middleware.Next) (any, error) {
		type outcome struct {
			result any
			err    error
		}
		done := make(chan outcome, 1)
		go func() {
			result, err := next()
			done <- outcome{result, err}
		}()

		select {
		case o := <-done:
			return o.result, o.err
		case <-time.After(d):
			return nil, ErrTimeout
		}
	}
}
