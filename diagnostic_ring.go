package responsive

import "sync"

// diagnosticRing is a thread-safe ring buffer for storing recent diagnostics.
type diagnosticRing struct {
	mu    sync.RWMutex
	items []Diagnostic
	size  int
	head  int
	count int
}

// newDiagnosticRing creates a ring buffer with the given capacity.
// If size is 0, the ring buffer is disabled.
func newDiagnosticRing(size int) *diagnosticRing {
	if size <= 0 {
		return nil
	}
	return &diagnosticRing{
		items: make([]Diagnostic, size),
		size:  size,
	}
}

// push adds a diagnostic, evicting the oldest when full.
func (r *diagnosticRing) push(d Diagnostic) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = d
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// clear removes all diagnostics.
func (r *diagnosticRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		r.items[i] = Diagnostic{}
	}
	r.head = 0
	r.count = 0
}

// all returns the stored diagnostics, oldest first.
func (r *diagnosticRing) all() []Diagnostic {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Diagnostic, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.items[(start+i)%r.size]
	}
	return result
}
