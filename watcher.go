package responsive

import "context"

// Watcher observes a breakpoint spec document and emits its raw bytes.
type Watcher interface {
	// Watch begins observing the document and returns a channel that emits
	// its bytes whenever it changes. The current document must be emitted
	// first so the Resolver can build its initial breakpoint set. The channel
	// is closed when the context is canceled or the source fails for good.
	Watch(ctx context.Context) (<-chan []byte, error)
}
