package main

import (
	"context"
	"log"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/responsive"
)

// hookLogging writes resolver events to logger.
func hookLogging(logger *log.Logger) {
	capitan.Hook(responsive.ResolverStateChanged, func(_ context.Context, e *capitan.Event) {
		oldState, _ := responsive.KeyOldState.From(e)
		newState, _ := responsive.KeyNewState.From(e)
		logger.Printf("[STATE] %s -> %s", oldState, newState)
	})

	capitan.Hook(responsive.BreakpointChanged, func(_ context.Context, e *capitan.Event) {
		prev, _ := responsive.KeyPrevious.From(e)
		curr, _ := responsive.KeyBreakpoint.From(e)
		logger.Printf("[BREAKPOINT] %q -> %q", prev, curr)
	})

	capitan.Hook(responsive.SpecNormalized, func(_ context.Context, e *capitan.Event) {
		count, _ := responsive.KeyCount.From(e)
		logger.Printf("[SPEC] %d breakpoints", count)
	})

	capitan.Hook(responsive.SpecRejected, func(_ context.Context, e *capitan.Event) {
		errMsg, _ := responsive.KeyError.From(e)
		logger.Printf("[REJECTED] %s", errMsg)
	})

	capitan.Hook(responsive.DiagnosticError, func(_ context.Context, e *capitan.Event) {
		kind, _ := responsive.KeyKind.From(e)
		msg, _ := responsive.KeyMessage.From(e)
		logger.Printf("[ERROR] %s: %s", kind, msg)
	})

	capitan.Hook(responsive.DiagnosticWarning, func(_ context.Context, e *capitan.Event) {
		kind, _ := responsive.KeyKind.From(e)
		msg, _ := responsive.KeyMessage.From(e)
		logger.Printf("[WARNING] %s: %s", kind, msg)
	})
}
