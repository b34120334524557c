package responsive

import (
	"context"
	"fmt"
	"reflect"
)

// Severity separates fatal validation errors from advisory warnings.
type Severity int

const (
	// SeverityError marks a malformed input. The affected entry or document
	// is dropped.
	SeverityError Severity = iota

	// SeverityWarning marks a semantic issue that does not stop normalization.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Kind identifies a diagnostic.
type Kind int

const (
	// KindNotResponsiveObject: the values document is not a mapping.
	KindNotResponsiveObject Kind = iota

	// KindNotObject: the breakpoint spec document is not a mapping.
	KindNotObject

	// KindBreakpointType: a breakpoint is neither a query string nor a range pair.
	KindBreakpointType

	// KindLength: a range pair does not have exactly two elements.
	KindLength

	// KindType: a range pair element is neither a number nor false.
	KindType

	// KindBothFalse: both bounds of a range pair are false.
	KindBothFalse

	// KindUndefinedBreakpoint: a value is keyed by a breakpoint the spec does
	// not define, so it can never be selected.
	KindUndefinedBreakpoint
)

var kindTags = [...]string{
	KindNotResponsiveObject: "NOT_RESPONSIVE_OBJECT",
	KindNotObject:           "NOT_OBJECT",
	KindBreakpointType:      "BREAKPOINT_TYPE",
	KindLength:              "LENGTH",
	KindType:                "TYPE",
	KindBothFalse:           "BOTH_FALSE",
	KindUndefinedBreakpoint: "UNDEFINED_BREAKPOINT",
}

// String returns the tag of the kind, e.g. "BOTH_FALSE".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return "UNKNOWN"
	}
	return kindTags[k]
}

// Severity reports whether the kind is fatal or advisory.
func (k Kind) Severity() Severity {
	if k == KindUndefinedBreakpoint {
		return SeverityWarning
	}
	return SeverityError
}

// Diagnostic is a single validation finding. Only the payload fields
// relevant to Kind are populated.
type Diagnostic struct {
	Kind Kind

	// Key is the breakpoint name the finding is about.
	Key string

	// Value is the offending breakpoint definition or mapped value.
	Value any

	// Type is the type name of the offending input.
	Type string

	// Length is the element count of a malformed range pair.
	Length int
}

// Severity returns the severity of the diagnostic's kind.
func (d Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

// Message returns the human readable description of the finding.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case KindNotResponsiveObject:
		return fmt.Sprintf("Invalid responsive object type: %s! The responsive object must be defined as an object.", d.Type)
	case KindNotObject:
		return fmt.Sprintf("Invalid custom breakpoints type: %s! Custom breakpoints must be an object.", d.Type)
	case KindBreakpointType:
		return fmt.Sprintf("Invalid breakpoint value in custom breakpoints object!\nKey: %s / Value: %v\nType: %s\n- Breakpoint value must be an array or a string.", d.Key, d.Value, d.Type)
	case KindLength:
		return fmt.Sprintf("Invalid array length: %d! Array length must be 2 ([min-width, max-width]).", d.Length)
	case KindType:
		return fmt.Sprintf("Invalid value type: %s! Type of value must be number or boolean (false).", d.Type)
	case KindBothFalse:
		return "Both values in the array are false! At least one value must be a number."
	case KindUndefinedBreakpoint:
		return fmt.Sprintf("The responsive object contains a value that is not defined in the custom breakpoints object.\nKey: %s / Value: %v\nTo fix this add { %s: [min-width, max-width] } in your custom breakpoints object.", d.Key, d.Value, d.Key)
	default:
		return "unknown diagnostic"
	}
}

// Error implements error, so decoding functions can return a Diagnostic.
func (d *Diagnostic) Error() string {
	suffix := "_ERROR"
	if d.Severity() == SeverityWarning {
		suffix = "_WARNING"
	}
	return d.Kind.String() + suffix + ": " + d.Message()
}

// Reporter receives diagnostics produced during normalization.
// Reporting is observational: it never changes the normalization result.
type Reporter interface {
	Report(ctx context.Context, d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, d Diagnostic)

// Report calls f(ctx, d).
func (f ReporterFunc) Report(ctx context.Context, d Diagnostic) {
	f(ctx, d)
}

// SignalReporter emits diagnostics as capitan signals. It is the default
// Reporter for a Resolver.
type SignalReporter struct{}

// Report emits DiagnosticError or DiagnosticWarning depending on severity.
func (SignalReporter) Report(ctx context.Context, d Diagnostic) {
	signal := DiagnosticError
	if d.Severity() == SeverityWarning {
		signal = DiagnosticWarning
	}
	emit(ctx, signal, diagnosticFields(d)...)
}

// Ensure SignalReporter implements Reporter.
var _ Reporter = SignalReporter{}

// typeName describes v the way diagnostics report input types.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
