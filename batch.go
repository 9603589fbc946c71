package natsort

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is how many values a worker keys between context checks.
const ctxCheckInterval = 1024

// Keys returns the key of every value, computed by up to NumWorkers
// goroutines. keys[i] is the key of values[i]. Truncated keys, and split keys
// under Warn, are returned as is. Under Reject the first oversized digit run
// stops the batch and is returned with the index of its value.
func (e *Encoder) Keys(ctx context.Context, values []string) ([]string, error) {
	keys := make([]string, len(values))
	if len(values) == 0 {
		return keys, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	batch := (len(values) + e.workers - 1) / e.workers
	for lo := 0; lo < len(values); lo += batch {
		hi := min(lo+batch, len(values))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%ctxCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				r, err := e.record(values[i])
				if err != nil {
					return fmt.Errorf("value %d: %w", i, err)
				}
				keys[i] = r.key
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
