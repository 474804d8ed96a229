// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package embedding

import (
	"context"
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single retry wait.
const maxBackoff = 30 * time.Second

// backoff returns baseDelay * 2^(attempt-1) with ±25% jitter, capped at maxBackoff.
// Attempt 0 (the first try) has no delay.
func backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	d := baseDelay << uint(attempt-1)
	if d <= 0 || d > maxBackoff {
		d = maxBackoff
	}
	quarter := int64(d) / 4
	if quarter == 0 {
		return d
	}
	jitter := time.Duration(rand.Int64N(2*quarter+1) - quarter)
	return d + jitter
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
