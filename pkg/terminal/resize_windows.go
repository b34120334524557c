//go:build windows

package terminal

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
)

// pollInterval is how often the console size is checked. Windows has no
// resize signal.
const pollInterval = 500 * time.Millisecond

// resizes delivers a notification on every poll until ctx is canceled.
// Sync only notifies subscribers when the width actually changed.
func resizes(ctx context.Context, clock clockz.Clock) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)

		timer := clock.NewTimer(pollInterval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C():
				select {
				case out <- struct{}{}:
				default:
				}
				timer.Reset(pollInterval)
			}
		}
	}()
	return out
}
