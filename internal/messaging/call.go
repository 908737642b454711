// Package messaging models a request/response call into another execution
// context (a browser tab, a page-side agent) with a bounded wait.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRemoteUnreachable is returned when the remote side does not answer in
// time or dies while handling the call.
var ErrRemoteUnreachable = errors.New("messaging: remote context unreachable")

// Handler answers a single request inside the remote context.
type Handler[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Call sends req to h and waits at most timeout for the answer. Exactly one
// call is in flight per invocation. A late answer is dropped; the handler
// goroutine never blocks on delivering it.
func Call[Req, Resp any](ctx context.Context, timeout time.Duration, h Handler[Req, Resp], req Req) (Resp, error) {
	var zero Resp
	if timeout <= 0 {
		return zero, fmt.Errorf("%w: non-positive timeout", ErrRemoteUnreachable)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		resp Resp
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- result{err: fmt.Errorf("%w: remote panic: %v", ErrRemoteUnreachable, rec)}
			}
		}()
		resp, err := h(ctx, req)
		done <- result{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() != nil {
			return zero, fmt.Errorf("%w: %w", ErrRemoteUnreachable, r.err)
		}
		return r.resp, r.err
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", ErrRemoteUnreachable, ctx.Err())
	}
}
