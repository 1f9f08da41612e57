// Package poller waits for long-running remote operations with a fixed interval and
// a wall-clock ceiling.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrTimeout is returned when the operation is still pending at the ceiling
var ErrTimeout = errors.New("polling ceiling reached")

var errPending = errors.New("operation pending")

// CheckFunc reports whether the operation is done. A non-nil error stops polling.
type CheckFunc func(ctx context.Context) (bool, error)

// Until calls check every interval until it reports done, returns an error, the context
// ends, or the ceiling elapses. Nothing is cancelled remotely on timeout; the caller
// simply stops waiting.
func Until(ctx context.Context, interval, ceiling time.Duration, check CheckFunc) error {
	if ceiling <= 0 {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if !done {
			return ErrTimeout
		}
		return nil
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		done, err := check(ctx)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		if !done {
			return struct{}{}, errPending
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(interval)),
		backoff.WithMaxElapsedTime(ceiling),
	)
	if errors.Is(err, errPending) {
		return ErrTimeout
	}
	return err
}
