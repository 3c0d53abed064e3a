package llm

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// limitedClient gates calls through a shared token bucket and optionally
// bounds each call with a timeout.
type limitedClient struct {
	next    Client
	limiter *rate.Limiter
	timeout time.Duration
}

// WithLimits wraps c with a global rate limit (rps <= 0 disables it) and a
// per-call timeout (<= 0 disables it). When both are disabled c is returned.
func WithLimits(c Client, rps float64, timeout time.Duration) Client {
	if rps <= 0 && timeout <= 0 {
		return c
	}
	lc := &limitedClient{next: c, timeout: timeout}
	if rps > 0 {
		burst := int(math.Ceil(rps))
		if burst < 1 {
			burst = 1
		}
		lc.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return lc
}

func (l *limitedClient) Name() string {
	return l.next.Name()
}

func (l *limitedClient) Complete(ctx context.Context, prompt string) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}
	return l.next.Complete(ctx, prompt)
}
