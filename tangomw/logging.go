// Package tangomw provides opt-in application middleware stages: logging,
// timeout, rate limiting, retry. None of these are core dispatch
// invariants — they are ordinary Stage[T] values a caller attaches the
// same way as any application middleware, generic over whichever context
// type (server.Context or client.Context) they're attached to since none
// of them need to reach into context-specific fields beyond what the
// label function exposes.
package tangomw

import (
	"time"

	"go.uber.org/zap"

	"tango/middleware"
)

// Logging records the wrapped call's duration and any error. label
// extracts a description from ctx for the log line (e.g. the route key or
// call path), since server.Context and client.Context expose that
// differently.
func Logging[T any](log *zap.Logger, label func(T) string) middleware.Stage[T] {
	return func(ctx T, next middleware.Next) (any, error) {
		start := time.Now()
		result, err := next()
		duration := time.Since(start)

		fields := []zap.Field{zap.String("call", label(ctx)), zap.Duration("duration", duration)}
		if err != nil {
			log.Error("tango: call failed", append(fields, zap.Error(err))...)
		} else {
			log.Info("tango: call completed", fields...)
		}
		return result, err
	}
}
