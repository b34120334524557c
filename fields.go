package responsive

import (
	"fmt"

	"github.com/zoobzio/capitan"
)

// Field keys for Resolver events.
var (
	// KeyState is the current state of the Resolver.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyBreakpoint is a breakpoint name.
	KeyBreakpoint = capitan.NewStringKey("breakpoint")

	// KeyPrevious is the breakpoint that matched before a change.
	KeyPrevious = capitan.NewStringKey("previous")

	// KeyCount is the number of breakpoints in a normalized set.
	KeyCount = capitan.NewIntKey("count")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)

// Field keys for diagnostics.
var (
	// KeyKind is the diagnostic kind tag, e.g. "BOTH_FALSE".
	KeyKind = capitan.NewStringKey("kind")

	// KeyMessage is the human readable diagnostic message.
	KeyMessage = capitan.NewStringKey("message")

	// KeyValue is the offending value, formatted with %v.
	KeyValue = capitan.NewStringKey("value")

	// KeyType is the type name of the offending value.
	KeyType = capitan.NewStringKey("type")

	// KeyLength is the length of a malformed range pair.
	KeyLength = capitan.NewIntKey("length")
)

func diagnosticFields(d Diagnostic) []capitan.Field {
	fields := []capitan.Field{
		KeyKind.Field(d.Kind.String()),
		KeyMessage.Field(d.Message()),
	}
	if d.Key != "" {
		fields = append(fields, KeyBreakpoint.Field(d.Key))
	}
	if d.Value != nil {
		fields = append(fields, KeyValue.Field(fmt.Sprintf("%v", d.Value)))
	}
	if d.Type != "" {
		fields = append(fields, KeyType.Field(d.Type))
	}
	if d.Kind == KindLength {
		fields = append(fields, KeyLength.Field(d.Length))
	}
	return fields
}
