package tangomw

import (
	"time"

	"go.uber.org/zap"

	"tango/middleware"
)

// Retry re-invokes the rest of the chain up to maxRetries times, with
// exponential backoff (baseDelay * 2^attempt), when next() fails with an
// error isRetryable accepts. A nil isRetryable retries every error.
func Retry[T any](log *zap.Logger, maxRetries int, baseDelay time.Duration, isRetryable func(error) bool) middleware.Stage[T] {
	if isRetryable == nil {
		isRetryable = func(error) bool { return true }
	}
	return func(ctx T, next middleware.Next) (any, error) {
		result, err := next()
		for attempt := 0; attempt < maxRetries; attempt++ {
			if err == nil {
				return result, nil
			}
			if !isRetryable(err) {
				return result, err
			}
			log.Warn("tango: retrying call", zap.Int("attempt", attempt+1), zap.Error(err))
			time.Sleep(baseDelay * (1 << attempt))
			result, err = next()
		}
		return result, err
	}
}
