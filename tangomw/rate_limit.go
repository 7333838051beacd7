package tangomw

import (
	"errors"

	"golang.org/x/time/rate"

	"tango/middleware"
)

// ErrRateLimited is returned when a call is rejected by RateLimit.
var ErrRateLimited = errors.New("tango: rate limit exceeded")

// RateLimit applies a token-bucket limiter shared across every call through
// this stage (the limiter is built once, here, not per-call — a per-call
// limiter would hand every request a fresh full bucket and defeat the
// point). r is the refill rate in tokens/second, burst the bucket size.
func RateLimit[T any](r float64, burst int) middleware.Stage[T] {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(ctx T, next middleware.Next) (any, error) {
		if !limiter.Allow() {
			return nil, ErrRateLimited
		}
		return next()
	}
}
