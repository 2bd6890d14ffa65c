// Package signal provides signal handling for graceful shutdown of the
// vtcli CLI.
//
// A received SIGINT/SIGTERM cancels the workflow context; in-flight HTTP
// calls and poll sleeps observe the cancellation and unwind. The
// server-side translation keeps running — interrupting the client never
// cancels the vendor operation.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler registers SIGINT and SIGTERM handlers.
// When a signal is received, it calls the onInterrupt callback (if non-nil),
// then cancels the context. The listening goroutine exits when either a
// signal arrives or the context is cancelled.
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}()
}
