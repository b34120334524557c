// Package testing provides test utilities and helpers for responsive resolver testing.
package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/responsive"
)

// ScriptedEvaluator is a responsive.Evaluator whose answers are set by the
// test. Queries without a scripted answer do not match.
type ScriptedEvaluator struct {
	mu      sync.Mutex
	answers map[string]bool
	calls   []string
}

// NewScriptedEvaluator creates an evaluator that matches exactly the given queries.
func NewScriptedEvaluator(matching ...string) *ScriptedEvaluator {
	e := &ScriptedEvaluator{answers: make(map[string]bool)}
	e.Script(matching...)
	return e
}

// Script replaces the set of matching queries.
func (e *ScriptedEvaluator) Script(matching ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.answers = make(map[string]bool, len(matching))
	for _, q := range matching {
		e.answers[q] = true
	}
}

// Matches implements responsive.Evaluator.
func (e *ScriptedEvaluator) Matches(query string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, query)
	return e.answers[query]
}

// Calls returns every query evaluated so far, in order.
func (e *ScriptedEvaluator) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.calls))
	copy(out, e.calls)
	return out
}

// CountingNotifier is a responsive.Notifier that records subscription
// traffic and lets the test fire notifications by hand.
type CountingNotifier struct {
	mu           sync.Mutex
	subscribes   int
	unsubscribes int
	active       map[int]func()
	next         int
}

// NewCountingNotifier creates an empty CountingNotifier.
func NewCountingNotifier() *CountingNotifier {
	return &CountingNotifier{active: make(map[int]func())}
}

// Subscribe implements responsive.Notifier.
func (n *CountingNotifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribes++
	n.next++
	id := n.next
	n.active[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			n.unsubscribes++
			delete(n.active, id)
		})
	}
}

// Fire invokes every active subscription.
func (n *CountingNotifier) Fire() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.active))
	for _, fn := range n.active {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Active returns the number of live subscriptions.
func (n *CountingNotifier) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.active)
}

// Subscribes returns how many times Subscribe was called.
func (n *CountingNotifier) Subscribes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.subscribes
}

// Unsubscribes returns how many subscriptions were removed.
func (n *CountingNotifier) Unsubscribes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.unsubscribes
}

// Recorder is a responsive.Reporter that keeps every diagnostic.
type Recorder struct {
	mu          sync.Mutex
	diagnostics []responsive.Diagnostic
}

// Report implements responsive.Reporter.
func (r *Recorder) Report(_ context.Context, d responsive.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns the recorded diagnostics in report order.
func (r *Recorder) Diagnostics() []responsive.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]responsive.Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Kinds returns the kinds of the recorded diagnostics in report order.
func (r *Recorder) Kinds() []responsive.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]responsive.Kind, len(r.diagnostics))
	for i, d := range r.diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}

// Reset discards the recorded diagnostics.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = nil
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// RequireState fails the test immediately if the resolver is not in the expected state.
func RequireState[V any](t *testing.T, r *responsive.Resolver[V], expected responsive.State) {
	t.Helper()
	if got := r.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireValue fails the test if the resolver has no value or it differs from want.
func RequireValue[V comparable](t *testing.T, r *responsive.Resolver[V], want V) {
	t.Helper()
	got, ok := r.Value()
	if !ok {
		t.Fatalf("expected value %v, got no match (breakpoint %q)", want, r.Current())
	}
	if got != want {
		t.Fatalf("expected value %v, got %v", want, got)
	}
}

// RequireNoMatch fails the test if the resolver resolved to a value.
func RequireNoMatch[V any](t *testing.T, r *responsive.Resolver[V]) {
	t.Helper()
	if got, ok := r.Value(); ok {
		t.Fatalf("expected no match, got %v (breakpoint %q)", got, r.Current())
	}
}

// NewTestResolver creates a resolver over an in-memory viewport of the given
// width, reporting diagnostics to the returned Recorder.
func NewTestResolver[V any](t *testing.T, width float64, values map[string]V) (*responsive.Resolver[V], *responsive.Viewport, *Recorder) {
	t.Helper()
	viewport := responsive.NewViewport(width)
	rec := &Recorder{}
	r := responsive.New(viewport, viewport, values).Reporter(rec)
	t.Cleanup(func() { r.Close(context.Background()) })
	return r, viewport, rec
}
