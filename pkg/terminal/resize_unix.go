//go:build !windows

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zoobzio/clockz"
)

// resizes delivers a notification for every SIGWINCH until ctx is canceled.
func resizes(ctx context.Context, _ clockz.Clock) <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer signal.Stop(sig)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
