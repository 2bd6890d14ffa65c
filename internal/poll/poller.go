// Package poll waits for a server-side asynchronous operation to reach a
// terminal status.
//
// Deadline rule: the poller checks the budget before sleeping. After a
// non-terminal status, if sleeping one more interval would pass MaxWait it
// returns TimedOut immediately; it never sleeps past the deadline and never
// polls again after observing a terminal status. At least one status fetch
// is always attempted. Failed status fetches sleep one interval and retry
// without consuming the wait budget.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/logging"
)

// Defaults applied by Wait when the corresponding Poller field is zero.
const (
	DefaultInterval = 30 * time.Second
	DefaultMaxWait  = 60 * time.Minute
)

// State is the terminal disposition of a poll.
type State string

const (
	StateSucceeded State = "Succeeded"
	StateFailed    State = "Failed"
	StateCancelled State = "Cancelled"
	StateTimedOut  State = "TimedOut"
)

// Outcome is the result of waiting on an operation. Operation holds the
// last observed status record; it is nil when the poll timed out, since a
// timeout means no terminal payload was ever seen.
type Outcome struct {
	State     State
	Operation *api.Operation
}

// Handle identifies a pollable operation. Handles are only ever built from
// the operation id sent with a successful submission; the poller never
// fabricates identifiers.
type Handle struct {
	OperationID string
}

// Fetcher fetches the current status record of an operation.
type Fetcher interface {
	GetOperation(ctx context.Context, id string) (*api.Operation, error)
}

// Poller repeatedly fetches operation status until a terminal state or the
// wait budget runs out. The server-side job keeps running after a client
// timeout; TimedOut is a client-side disposition only.
type Poller struct {
	Fetcher  Fetcher
	Interval time.Duration
	MaxWait  time.Duration

	// OnPoll is invoked after each successful status fetch with the
	// observed status and the wait budget consumed so far.
	OnPoll func(status string, elapsed time.Duration)
}

// Wait polls the operation behind h until it reaches a terminal status or
// the budget is spent. The only error return is context cancellation;
// fetch failures are logged and retried, and server-reported failure is a
// regular Outcome.
func (p *Poller) Wait(ctx context.Context, h Handle) (Outcome, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	maxWait := p.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	var elapsed time.Duration
	for {
		op, err := p.Fetcher.GetOperation(ctx, h.OperationID)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{}, ctx.Err()
			}
			// Fetch failures don't consume the wait budget; status
			// progression on the server is independent of our view of it.
			logging.Warn(fmt.Sprintf("status check for operation %s failed, will retry: %v", h.OperationID, err))
			if err := sleep(ctx, interval); err != nil {
				return Outcome{}, err
			}
			continue
		}

		if p.OnPoll != nil {
			p.OnPoll(op.Status, elapsed)
		}

		if api.TerminalStatus(op.Status) {
			return Outcome{State: State(op.Status), Operation: op}, nil
		}

		if elapsed+interval > maxWait {
			return Outcome{State: StateTimedOut}, nil
		}
		if err := sleep(ctx, interval); err != nil {
			return Outcome{}, err
		}
		elapsed += interval
	}
}

// sleep blocks for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
