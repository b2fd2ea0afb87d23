package strava

import (
	"context"
	"math"
	"net/http"
	"time"
)

// sendWithRetry executes send and, while shouldRetry holds, runs beforeRetry
// and sends again with exponential backoff until maxRetries is reached.
func sendWithRetry(
	ctx context.Context,
	send func() (*http.Response, error),
	shouldRetry func(resp *http.Response, err error) bool,
	beforeRetry func(resp *http.Response, err error) error,
	maxRetries int,
	sleep func(context.Context, time.Duration) error,
) (*http.Response, error) {
	for retry := 0; retry <= maxRetries; retry++ {
		resp, err := send()
		if !shouldRetry(resp, err) {
			return resp, err
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		if retry == maxRetries {
			break
		}

		if err := beforeRetry(resp, err); err != nil {
			return nil, err
		}

		delay := time.Duration(math.Pow(2, float64(retry)) * float64(time.Second))
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, ErrMaxRetries
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func unauthorized(resp *http.Response, err error) bool {
	return err == nil && resp != nil && resp.StatusCode == http.StatusUnauthorized
}
