package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
)

// scriptedFetcher replays a fixed sequence of statuses and errors, then
// repeats the last entry forever.
type scriptedFetcher struct {
	script []any // string status or error
	calls  int
}

func (f *scriptedFetcher) GetOperation(ctx context.Context, id string) (*api.Operation, error) {
	idx := f.calls
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	f.calls++
	switch v := f.script[idx].(type) {
	case error:
		return nil, v
	case string:
		return &api.Operation{ID: id, Status: v}, nil
	default:
		panic("bad script entry")
	}
}

func fastPoller(f Fetcher) *Poller {
	return &Poller{Fetcher: f, Interval: time.Millisecond, MaxWait: time.Second}
}

func TestWait_TerminalStatuses(t *testing.T) {
	terminal := map[string]State{
		api.StatusSucceeded: StateSucceeded,
		api.StatusFailed:    StateFailed,
		api.StatusCancelled: StateCancelled,
	}

	for status, want := range terminal {
		t.Run("returns immediately on "+status, func(t *testing.T) {
			f := &scriptedFetcher{script: []any{status}}
			outcome, err := fastPoller(f).Wait(context.Background(), Handle{OperationID: "op-1"})

			require.NoError(t, err)
			assert.Equal(t, want, outcome.State)
			require.NotNil(t, outcome.Operation)
			assert.Equal(t, status, outcome.Operation.Status)
			assert.Equal(t, 1, f.calls, "must not poll again after a terminal status")
		})
	}

	t.Run("keeps polling through non-terminal statuses", func(t *testing.T) {
		f := &scriptedFetcher{script: []any{api.StatusNotStarted, api.StatusRunning, api.StatusSucceeded}}
		var observed []string
		p := fastPoller(f)
		p.OnPoll = func(status string, elapsed time.Duration) { observed = append(observed, status) }

		outcome, err := p.Wait(context.Background(), Handle{OperationID: "op-1"})

		require.NoError(t, err)
		assert.Equal(t, StateSucceeded, outcome.State)
		assert.Equal(t, []string{api.StatusNotStarted, api.StatusRunning, api.StatusSucceeded}, observed)
		assert.Equal(t, 3, f.calls)
	})
}

func TestWait_Timeout(t *testing.T) {
	t.Run("interval larger than budget times out after a single poll", func(t *testing.T) {
		f := &scriptedFetcher{script: []any{api.StatusRunning}}
		p := &Poller{Fetcher: f, Interval: 30 * time.Second, MaxWait: time.Second}

		start := time.Now()
		outcome, err := p.Wait(context.Background(), Handle{OperationID: "op-1"})

		require.NoError(t, err)
		assert.Equal(t, StateTimedOut, outcome.State)
		assert.Nil(t, outcome.Operation, "timeout carries no status payload")
		assert.Equal(t, 1, f.calls)
		assert.Less(t, time.Since(start), time.Second, "must not sleep past the deadline")
	})

	t.Run("never polls again once the budget is spent", func(t *testing.T) {
		f := &scriptedFetcher{script: []any{api.StatusRunning}}
		p := &Poller{Fetcher: f, Interval: time.Millisecond, MaxWait: 3 * time.Millisecond}

		outcome, err := p.Wait(context.Background(), Handle{OperationID: "op-1"})

		require.NoError(t, err)
		assert.Equal(t, StateTimedOut, outcome.State)
		// Budget of 3ms with 1ms intervals: polls at elapsed 0, 1, 2, 3,
		// then 3+1 > 3 stops the loop.
		assert.Equal(t, 4, f.calls)
	})
}

func TestWait_FetchFailures(t *testing.T) {
	t.Run("fetch failures are retried and do not consume the budget", func(t *testing.T) {
		boom := errors.New("connection refused")
		f := &scriptedFetcher{script: []any{boom, boom, api.StatusRunning, api.StatusSucceeded}}

		var elapsedAtFirstPoll time.Duration = -1
		p := fastPoller(f)
		p.OnPoll = func(status string, elapsed time.Duration) {
			if elapsedAtFirstPoll < 0 {
				elapsedAtFirstPoll = elapsed
			}
		}

		outcome, err := p.Wait(context.Background(), Handle{OperationID: "op-1"})

		require.NoError(t, err)
		assert.Equal(t, StateSucceeded, outcome.State)
		assert.Equal(t, 4, f.calls)
		assert.Equal(t, time.Duration(0), elapsedAtFirstPoll,
			"failed fetches must not advance elapsed time")
	})

	t.Run("persistent fetch failures only end via context cancellation", func(t *testing.T) {
		boom := errors.New("dns failure")
		f := &scriptedFetcher{script: []any{boom}}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := fastPoller(f).Wait(ctx, Handle{OperationID: "op-1"})

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Greater(t, f.calls, 1, "should have kept retrying until cancelled")
	})
}

func TestWait_ContextCancellation(t *testing.T) {
	t.Run("cancellation aborts the inter-poll sleep", func(t *testing.T) {
		f := &scriptedFetcher{script: []any{api.StatusRunning}}
		p := &Poller{Fetcher: f, Interval: time.Minute, MaxWait: time.Hour}

		ctx, cancel := context.WithCancel(context.Background())
		p.OnPoll = func(status string, elapsed time.Duration) { cancel() }

		start := time.Now()
		_, err := p.Wait(ctx, Handle{OperationID: "op-1"})

		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}
