package responsive

import "sync"

// Evaluator answers whether a query currently holds for the viewport.
// It is queried on every resolve pass; results are not cached.
type Evaluator interface {
	Matches(query string) bool
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(query string) bool

// Matches calls f(query).
func (f EvaluatorFunc) Matches(query string) bool {
	return f(query)
}

// Notifier delivers viewport change notifications.
//
// Subscribe registers fn to be called on every viewport dimension change and
// returns a function that removes the registration. Calling the returned
// function more than once is safe.
type Notifier interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Viewport is an in-memory viewport. It evaluates width-only queries against
// its current width and notifies subscribers whenever the width changes.
// Use it directly in tests, or as the backing store of a real viewport source
// such as pkg/terminal.
type Viewport struct {
	mu     sync.RWMutex
	width  float64
	nextID uint64
	subs   map[uint64]func()
	order  []uint64
}

// NewViewport creates a Viewport with the given initial width in pixels.
func NewViewport(width float64) *Viewport {
	return &Viewport{
		width: width,
		subs:  make(map[uint64]func()),
	}
}

// Width returns the current width.
func (v *Viewport) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// SetWidth updates the width and notifies every subscriber synchronously.
// Subscribers are not notified when the width is unchanged.
func (v *Viewport) SetWidth(width float64) {
	v.mu.Lock()
	if v.width == width {
		v.mu.Unlock()
		return
	}
	v.width = width
	fns := v.snapshot()
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Matches reports whether query holds at the current width. Queries that are
// not width-only min/max queries never match.
func (v *Viewport) Matches(query string) bool {
	iv, err := ParseQuery(query)
	if err != nil {
		return false
	}
	return iv.Contains(v.Width())
}

// Subscribe registers fn for width changes.
func (v *Viewport) Subscribe(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	id := v.nextID
	v.subs[id] = fn
	v.order = append(v.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			for i, oid := range v.order {
				if oid == id {
					v.order = append(v.order[:i], v.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (v *Viewport) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

// snapshot returns subscribers in registration order. Caller holds v.mu.
func (v *Viewport) snapshot() []func() {
	fns := make([]func(), 0, len(v.order))
	for _, id := range v.order {
		fns = append(fns, v.subs[id])
	}
	return fns
}

var (
	_ Evaluator = (*Viewport)(nil)
	_ Notifier  = (*Viewport)(nil)
)
