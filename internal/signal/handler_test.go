package signal

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetupSignalHandler(t *testing.T) {
	t.Run("cancels the context and runs the callback on SIGTERM", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		interrupted := make(chan struct{})
		SetupSignalHandler(ctx, cancel, func() { close(interrupted) })

		require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled after SIGTERM")
		}

		select {
		case <-interrupted:
		default:
			t.Fatal("onInterrupt callback did not run before cancellation")
		}
	})

	t.Run("nil callback is allowed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		SetupSignalHandler(ctx, cancel, nil)

		require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled after SIGTERM")
		}
	})
}
