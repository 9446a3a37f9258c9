// Package async runs background work that outlives the caller's context.
package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Tracker runs handlers on their own goroutines and lets callers wait for them.
//
// Each goroutine gets a background context that keeps the ctxlog logger of
// the caller but not its cancellation, so work started by a request outlives
// it. Panics are recovered and logged together with the stack. Returned
// errors are logged.
//
// Wait must not run concurrently with the first Go of a new batch.
type Tracker struct {
	wg sync.WaitGroup
}

// Go dispatches handler and tracks it until it returns
func (t *Tracker) Go(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := ctxlog.With(context.Background(), ctxlog.From(ctx))

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		run(newCtx, handler)
	}()
}

// Wait blocks until every handler started with Go has returned
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func run(ctx context.Context, handler func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(ctx).Error("panic in async handler",
				"recover", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := handler(ctx); err != nil {
		ctxlog.From(ctx).Error("error in async handler", "error", err)
	}
}
