// Package middleware implements the onion-model pipeline shared by both
// the Tango server dispatcher and the Tango client caller.
//
// Onion model execution order:
//
//	Run(ctx, A, B, C)
//
//	Request:   A.before → B.before → C.before
//	Response:  C.after  → B.after  → A.after
//
// Each stage can:
//   - do pre-processing before calling next
//   - call next() to continue down the chain
//   - do post-processing after next() returns
//   - short-circuit by returning its own value without calling next
//
// The executor is generic over the context type so the exact same pipeline
// machinery drives the server's per-request Context and the client's
// per-call Context, instead of two parallel implementations.
package middleware

import "errors"

// ErrPipelineExhausted is returned when every stage in a chain calls next()
// and none of them returns its own value — the terminal stage's contract is
// to always return without calling next, so reaching this error is a
// programming error in the assembled chain, not an expected runtime
// outcome.
var ErrPipelineExhausted = errors.New("tango: pipeline exhausted — the last stage must return without calling next")

// Next invokes the remainder of the chain and returns its result.
type Next func() (any, error)

// Stage is one link in the pipeline. ctx is the shared mutable state
// threaded through every stage (server.Context or client.Context).
type Stage[T any] func(ctx T, next Next) (any, error)

// Run executes stages in order over ctx, in the order given: stages[0] is
// outermost. The caller is responsible for appending a terminal stage that
// returns without calling next — e.g. the compiled handler's terminal
// runner, or the client transport's terminal call.
func Run[T any](ctx T, stages ...Stage[T]) (any, error) {
	return runFrom(ctx, stages, 0)
}

func runFrom[T any](ctx T, stages []Stage[T], i int) (any, error) {
	if i >= len(stages) {
		return nil, ErrPipelineExhausted
	}
	stage := stages[i]
	return stage(ctx, func() (any, error) {
		return runFrom(ctx, stages, i+1)
	})
}
