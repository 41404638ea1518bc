package utils

import (
	"context"
	"time"
)

type Backoff struct {
	base       time.Duration
	max        time.Duration
	maxRetries int
}

func NewBackoff(base, max time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, max: max, maxRetries: maxRetries}
}

// Do runs fn up to maxRetries+1 times with capped exponential delays between
// attempts. A canceled context stops the wait and returns its error.
func (b Backoff) Do(ctx context.Context, fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		if i == b.maxRetries {
			break
		}
		d := time.Duration(1<<i) * b.base
		if b.max > 0 && d > b.max {
			d = b.max
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return err
}
