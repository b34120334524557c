package responsive

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for spec document changes.
const DefaultDebounce = 100 * time.Millisecond

// Resolution is the outcome of a resolve pass. Matched is false when no
// breakpoint matches or the matching breakpoint has no value; Value is then
// the zero value and must not be used.
type Resolution[V any] struct {
	Breakpoint string
	Value      V
	Matched    bool
}

// Resolve returns the name of the last breakpoint in set whose query holds,
// or "" when none does. Later breakpoints take precedence when ranges overlap.
func Resolve(set *Set, evaluator Evaluator) string {
	if set == nil || evaluator == nil {
		return ""
	}
	current := ""
	for _, bp := range set.breakpoints {
		if evaluator.Matches(bp.Query) {
			current = bp.Name
		}
	}
	return current
}

// Lookup returns the value mapped to name. It reports false when name is
// empty or has no entry in values.
func Lookup[V any](name string, values map[string]V) (V, bool) {
	if name == "" {
		var zero V
		return zero, false
	}
	v, ok := values[name]
	return v, ok
}

// Resolver follows the viewport and exposes the value mapped to the
// currently matching breakpoint.
//
// It owns exactly one viewport subscription, tied to the breakpoint set it
// is evaluating. Replacing the spec drops that subscription before a new one
// is installed; Close drops it for good.
type Resolver[V any] struct {
	evaluator   Evaluator
	notifier    Notifier
	reporter    Reporter
	metrics     MetricsProvider
	clock       clockz.Clock
	codec       Codec
	debounce    time.Duration
	syncMode    bool
	onChange    func(ctx context.Context, prev, curr Resolution[V])
	diagnostics *diagnosticRing

	state atomic.Int32

	// specMu serializes spec changes and subscription swaps. It is never
	// held while the notifier invokes a callback into the resolver.
	specMu      sync.Mutex
	unsubscribe func()

	mu         sync.Mutex
	started    bool
	closed     bool
	spec       Spec
	values     map[string]V
	set        *Set
	resolution Resolution[V]
	lastDiag   *Diagnostic

	// For sync mode: channel to receive spec documents
	changes <-chan []byte
}

// New creates a Resolver over the given viewport collaborators and values.
// The evaluator answers queries; the notifier reports viewport changes.
// A *Viewport serves as both.
//
// Instance configuration uses chainable methods before calling Start or Watch.
//
// Example:
//
//	viewport := responsive.NewViewport(600)
//	r := responsive.New(viewport, viewport, map[string]string{"sm": "A", "lg": "B"})
//	_ = r.Start(ctx, nil)
//	v, ok := r.Value() // "A", true
func New[V any](evaluator Evaluator, notifier Notifier, values map[string]V) *Resolver[V] {
	r := &Resolver[V]{
		evaluator: evaluator,
		notifier:  notifier,
		reporter:  SignalReporter{},
		clock:     clockz.RealClock,
		codec:     YAMLCodec{},
		debounce:  DefaultDebounce,
		values:    values,
	}
	r.state.Store(int32(StateLoading))
	return r
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Reporter sets where diagnostics are sent. Default: SignalReporter.
// Must be called before Start().
func (r *Resolver[V]) Reporter(reporter Reporter) *Resolver[V] {
	r.reporter = reporter
	return r
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (r *Resolver[V]) Metrics(provider MetricsProvider) *Resolver[V] {
	r.metrics = provider
	return r
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before Start().
func (r *Resolver[V]) Clock(clock clockz.Clock) *Resolver[V] {
	r.clock = clock
	return r
}

// Codec sets the codec used by Watch to decode spec documents.
// Default: YAMLCodec, which also accepts JSON. Must be called before Watch().
func (r *Resolver[V]) Codec(codec Codec) *Resolver[V] {
	r.codec = codec
	return r
}

// Debounce sets the debounce duration for spec document changes seen by
// Watch. Viewport notifications are never debounced.
// Default: 100ms. Must be called before Watch().
func (r *Resolver[V]) Debounce(d time.Duration) *Resolver[V] {
	r.debounce = d
	return r
}

// SyncMode makes Watch process only the initial document. Subsequent
// documents are processed by calling Process, which keeps tests deterministic.
// Must be called before Watch().
func (r *Resolver[V]) SyncMode() *Resolver[V] {
	r.syncMode = true
	return r
}

// OnChange sets a callback invoked after the resolution changes: a
// different breakpoint, a different matched flag, or new values.
// The callback runs without internal locks held. Must be called before Start().
func (r *Resolver[V]) OnChange(fn func(ctx context.Context, prev, curr Resolution[V])) *Resolver[V] {
	r.onChange = fn
	return r
}

// DiagnosticHistorySize sets how many recent diagnostics Diagnostics()
// returns. Use 0 (default) to only retain the most recent one via
// LastDiagnostic(). Must be called before Start().
func (r *Resolver[V]) DiagnosticHistorySize(n int) *Resolver[V] {
	r.diagnostics = newDiagnosticRing(n)
	return r
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the current state of the Resolver.
func (r *Resolver[V]) State() State {
	return State(r.state.Load())
}

// Current returns the name of the matching breakpoint, or "" when none matches.
func (r *Resolver[V]) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolution.Breakpoint
}

// Value returns the value of the matching breakpoint and true, or the zero
// value and false when nothing matches.
func (r *Resolver[V]) Value() (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolution.Value, r.resolution.Matched
}

// Resolution returns the latest resolution.
func (r *Resolver[V]) Resolution() Resolution[V] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolution
}

// Set returns the breakpoint set currently evaluated, or nil before Start.
func (r *Resolver[V]) Set() *Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set
}

// LastDiagnostic returns the most recent diagnostic, or nil.
func (r *Resolver[V]) LastDiagnostic() *Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastDiag == nil {
		return nil
	}
	d := *r.lastDiag
	return &d
}

// Diagnostics returns the diagnostics recorded since the current spec was
// applied, oldest first. Returns nil if history is not enabled
// (see DiagnosticHistorySize).
func (r *Resolver[V]) Diagnostics() []Diagnostic {
	return r.diagnostics.all()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start normalizes spec, resolves the current breakpoint and subscribes to
// viewport changes. A nil spec selects DefaultSpec.
//
// Start can only be called once. Subsequent calls return an error.
func (r *Resolver[V]) Start(ctx context.Context, spec Spec) error {
	if err := r.markStarted(); err != nil {
		return err
	}
	emit(ctx, ResolverStarted)
	r.SetSpec(ctx, spec)
	return nil
}

// SetSpec replaces the breakpoint spec. The spec is normalized into a new
// Set, the previous viewport subscription is removed, a new one is
// installed and the breakpoint is resolved again.
//
// Calling SetSpec before Start starts the Resolver without emitting
// ResolverStarted. SetSpec has no effect on a closed Resolver.
func (r *Resolver[V]) SetSpec(ctx context.Context, spec Spec) {
	r.specMu.Lock()
	defer r.specMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.started = true
	values := r.values
	r.mu.Unlock()

	r.diagnostics.clear()
	set := Normalize(ctx, values, spec, ReporterFunc(r.report))
	emit(ctx, SpecNormalized, KeyCount.Field(set.Len()))

	r.dropSubscription(ctx)
	r.subscribe(ctx, set)

	r.mu.Lock()
	r.spec = spec
	r.set = set
	change := r.resolveLocked(ctx)
	r.mu.Unlock()

	r.notify(ctx, change)
}

// SetValues replaces the value mapping. Under a custom spec the new keys are
// checked against it. The value is looked up again for the current
// breakpoint without re-evaluating the viewport.
func (r *Resolver[V]) SetValues(ctx context.Context, values map[string]V) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.values = values
	spec, started := r.spec, r.started
	r.mu.Unlock()

	if !started {
		return
	}
	if spec != nil {
		CheckCoverage(ctx, values, spec, ReporterFunc(r.report))
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	change := r.settleLocked(ctx, r.resolution, r.resolution.Breakpoint, true)
	r.mu.Unlock()

	r.notify(ctx, change)
}

// Refresh resolves the breakpoint again, as a viewport notification would.
func (r *Resolver[V]) Refresh(ctx context.Context) {
	r.mu.Lock()
	if r.closed || r.set == nil {
		r.mu.Unlock()
		return
	}
	change := r.resolveLocked(ctx)
	r.mu.Unlock()

	r.notify(ctx, change)
}

// Close removes the viewport subscription. The last resolution stays
// readable, but the Resolver no longer follows the viewport.
func (r *Resolver[V]) Close(ctx context.Context) {
	r.specMu.Lock()
	defer r.specMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.transitionState(ctx, StateClosed)
	r.mu.Unlock()

	r.dropSubscription(ctx)
	emit(ctx, ResolverStopped, KeyState.Field(StateClosed.String()))
}

func (r *Resolver[V]) markStarted() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.New("resolver closed")
	}
	if r.started {
		return errors.New("resolver already started")
	}
	r.started = true
	return nil
}

// -----------------------------------------------------------------------------
// Spec documents
// -----------------------------------------------------------------------------

// Watch uses spec documents from watcher instead of a fixed spec. It blocks
// until the first document is processed, then keeps watching asynchronously,
// coalescing changes that arrive within the debounce duration.
//
// A document whose root is not a mapping is reported and ignored; the
// previous breakpoint set stays active. If the first document is rejected the
// Resolver has no breakpoints and resolves to no match until a valid
// document arrives, and Watch returns the rejection.
//
// In sync mode, Watch only processes the initial document. Use Process() to
// handle subsequent ones.
//
// Watch counts as Start and can only be called once.
func (r *Resolver[V]) Watch(ctx context.Context, watcher Watcher) error {
	if err := r.markStarted(); err != nil {
		return err
	}

	emit(ctx, ResolverStarted, KeyDebounce.Field(r.debounce))

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return errors.New("watcher closed before emitting initial spec")
		}
		initialErr = r.apply(ctx, raw)
	}

	if r.syncMode {
		r.changes = changes
		return initialErr
	}

	go r.watch(ctx, changes)

	return initialErr
}

// Process reads and applies the next spec document from the watcher.
// This is only available in sync mode and is used for deterministic testing.
// Returns false if no document is available or the channel is closed.
func (r *Resolver[V]) Process(ctx context.Context) bool {
	if !r.syncMode || r.changes == nil {
		return false
	}

	select {
	case raw, ok := <-r.changes:
		if !ok {
			return false
		}
		_ = r.apply(ctx, raw) //nolint:errcheck // Rejections are reported
		return true
	default:
		return false
	}
}

// apply decodes a spec document and installs it.
func (r *Resolver[V]) apply(ctx context.Context, raw []byte) error {
	spec, err := DecodeSpec(raw, r.codec)
	if err != nil {
		var d *Diagnostic
		if errors.As(err, &d) {
			r.report(ctx, *d)
		}
		emit(ctx, SpecRejected, KeyError.Field(err.Error()))
		r.degrade(ctx)
		return err
	}
	r.SetSpec(ctx, spec)
	return nil
}

// degrade moves a Resolver that never obtained a breakpoint set to
// StateUnmatched.
func (r *Resolver[V]) degrade(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.set == nil && !r.closed {
		r.transitionState(ctx, StateUnmatched)
	}
}

// watch applies spec documents with debouncing.
func (r *Resolver[V]) watch(ctx context.Context, changes <-chan []byte) {
	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = r.apply(ctx, pending) //nolint:errcheck // Rejections are reported
				}
				return
			}

			pending = raw
			hasPending = true

			if timer == nil {
				timer = r.clock.NewTimer(r.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(r.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = r.apply(ctx, pending) //nolint:errcheck // Rejections are reported
				hasPending = false
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

// subscribe installs the viewport subscription for set. Caller holds specMu.
func (r *Resolver[V]) subscribe(ctx context.Context, set *Set) {
	if r.notifier == nil {
		return
	}
	r.unsubscribe = r.notifier.Subscribe(func() {
		r.onViewportChange(ctx, set)
	})
	emit(ctx, ViewportSubscribed, KeyCount.Field(set.Len()))
}

// dropSubscription removes the active subscription, if any. Caller holds specMu.
func (r *Resolver[V]) dropSubscription(ctx context.Context) {
	if r.unsubscribe == nil {
		return
	}
	r.unsubscribe()
	r.unsubscribe = nil
	emit(ctx, ViewportUnsubscribed)
}

// onViewportChange handles a notification for set. Notifications for a set
// that has since been replaced are ignored.
func (r *Resolver[V]) onViewportChange(ctx context.Context, set *Set) {
	r.mu.Lock()
	if r.closed || r.set != set {
		r.mu.Unlock()
		return
	}
	emit(ctx, ViewportChanged)
	if r.metrics != nil {
		r.metrics.OnViewportChange()
	}
	change := r.resolveLocked(ctx)
	r.mu.Unlock()

	r.notify(ctx, change)
}

// -----------------------------------------------------------------------------
// Resolution
// -----------------------------------------------------------------------------

type change[V any] struct {
	prev, curr Resolution[V]
}

// resolveLocked evaluates the set and looks up the value. Caller holds mu.
func (r *Resolver[V]) resolveLocked(ctx context.Context) *change[V] {
	prev := r.resolution
	start := r.clock.Now()
	name := Resolve(r.set, r.evaluator)
	if r.metrics != nil {
		r.metrics.OnResolve(name, r.clock.Since(start))
	}
	if name != prev.Breakpoint {
		emit(ctx, BreakpointChanged,
			KeyPrevious.Field(prev.Breakpoint),
			KeyBreakpoint.Field(name),
		)
	}
	return r.settleLocked(ctx, prev, name, false)
}

// settleLocked maps name to its value and stores the resolution. It returns
// a change when the breakpoint or matched flag differs from prev, or when
// force is set. Caller holds mu.
func (r *Resolver[V]) settleLocked(ctx context.Context, prev Resolution[V], name string, force bool) *change[V] {
	value, ok := Lookup(name, r.values)
	curr := Resolution[V]{Breakpoint: name, Value: value, Matched: ok}
	r.resolution = curr

	if ok {
		r.transitionState(ctx, StateMatched)
	} else {
		r.transitionState(ctx, StateUnmatched)
	}

	if !force && prev.Breakpoint == curr.Breakpoint && prev.Matched == curr.Matched {
		return nil
	}
	return &change[V]{prev: prev, curr: curr}
}

func (r *Resolver[V]) notify(ctx context.Context, c *change[V]) {
	if c == nil || r.onChange == nil {
		return
	}
	r.onChange(ctx, c.prev, c.curr)
}

// transitionState updates the state and emits a state change event if changed.
// Caller holds mu.
func (r *Resolver[V]) transitionState(ctx context.Context, newState State) {
	oldState := r.State()
	if oldState == newState || oldState == StateClosed {
		return
	}
	r.state.Store(int32(newState))
	emit(ctx, ResolverStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if r.metrics != nil {
		r.metrics.OnStateChange(oldState, newState)
	}
}

// report records a diagnostic and forwards it to the configured reporter.
func (r *Resolver[V]) report(ctx context.Context, d Diagnostic) {
	r.mu.Lock()
	r.lastDiag = &d
	r.mu.Unlock()

	r.diagnostics.push(d)
	if r.metrics != nil {
		r.metrics.OnDiagnostic(d.Kind)
	}
	if r.reporter != nil {
		r.reporter.Report(ctx, d)
	}
}
