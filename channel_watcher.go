package responsive

import "context"

// ChannelWatcher serves spec documents pushed onto a channel. It suits tests
// and callers that already hold documents in memory.
type ChannelWatcher struct {
	ch     <-chan []byte
	direct bool
}

// NewChannelWatcher creates a ChannelWatcher that relays documents through
// its own goroutine, stopping when the context is canceled.
func NewChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch}
}

// NewSyncChannelWatcher creates a ChannelWatcher that hands out the source
// channel itself. Pair it with Resolver.SyncMode for deterministic tests.
func NewSyncChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch, direct: true}
}

// Watch returns a channel of spec documents.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			var doc []byte
			select {
			case <-ctx.Done():
				return
			case v, ok := <-w.ch:
				if !ok {
					return
				}
				doc = v
			}
			select {
			case out <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

var _ Watcher = (*ChannelWatcher)(nil)
