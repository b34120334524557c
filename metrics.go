package responsive

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key resolver events.
type MetricsProvider interface {
	// OnStateChange is called when the resolver transitions between states.
	OnStateChange(from, to State)

	// OnResolve is called after every resolve pass with the matching
	// breakpoint ("" for none) and the time the pass took.
	OnResolve(breakpoint string, duration time.Duration)

	// OnDiagnostic is called for every diagnostic reported while normalizing.
	OnDiagnostic(kind Kind)

	// OnViewportChange is called when the notifier reports a viewport change.
	OnViewportChange()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)            {}
func (NoOpMetricsProvider) OnResolve(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnDiagnostic(_ Kind)                 {}
func (NoOpMetricsProvider) OnViewportChange()                   {}
