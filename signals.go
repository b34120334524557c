package responsive

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Resolver lifecycle signals.
var (
	// ResolverStarted is emitted when a Resolver performs its first evaluation.
	ResolverStarted = capitan.NewSignal(
		"responsive.resolver.started",
		"Resolver started",
	)

	// ResolverStopped is emitted when a Resolver is closed.
	ResolverStopped = capitan.NewSignal(
		"responsive.resolver.stopped",
		"Resolver stopped",
	)

	// ResolverStateChanged is emitted when a Resolver transitions between states.
	ResolverStateChanged = capitan.NewSignal(
		"responsive.resolver.state.changed",
		"Resolver state transition",
	)

	// ViewportSubscribed is emitted when a Resolver subscribes to viewport changes
	// for a new breakpoint set.
	ViewportSubscribed = capitan.NewSignal(
		"responsive.viewport.subscribed",
		"Viewport subscription installed",
	)

	// ViewportUnsubscribed is emitted when a Resolver drops its viewport subscription.
	ViewportUnsubscribed = capitan.NewSignal(
		"responsive.viewport.unsubscribed",
		"Viewport subscription removed",
	)

	// ViewportChanged is emitted when the notifier reports a viewport change.
	ViewportChanged = capitan.NewSignal(
		"responsive.viewport.changed",
		"Viewport change received",
	)

	// BreakpointChanged is emitted when the matching breakpoint changes.
	BreakpointChanged = capitan.NewSignal(
		"responsive.breakpoint.changed",
		"Matching breakpoint changed",
	)
)

// Spec processing signals.
var (
	// SpecNormalized is emitted when a breakpoint spec has been normalized.
	SpecNormalized = capitan.NewSignal(
		"responsive.spec.normalized",
		"Breakpoint spec normalized",
	)

	// SpecRejected is emitted when a spec document cannot be used at all.
	// The previous breakpoint set stays active.
	SpecRejected = capitan.NewSignal(
		"responsive.spec.rejected",
		"Breakpoint spec rejected",
	)

	// DiagnosticError is emitted for fatal validation errors.
	DiagnosticError = capitan.NewSignal(
		"responsive.diagnostic.error",
		"Breakpoint validation error",
	)

	// DiagnosticWarning is emitted for non-fatal validation warnings.
	DiagnosticWarning = capitan.NewSignal(
		"responsive.diagnostic.warning",
		"Breakpoint validation warning",
	)
)

func emit(ctx context.Context, signal capitan.Signal, fields ...capitan.Field) {
	capitan.Emit(ctx, signal, fields...)
}
