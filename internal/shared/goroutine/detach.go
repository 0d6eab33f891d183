// Package goroutine runs fire-and-forget work off the request path.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// Detach runs fn on its own goroutine with a fresh context bounded by timeout,
// so the work is not cancelled when the request that started it finishes.
// A returned error is logged as a warning, a panic as an error with its stack.
// The returned channel is closed once fn has returned.
func Detach(log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Warnw("detached task failed", "goroutine", name, "error", err)
		}
	}()

	return done
}
