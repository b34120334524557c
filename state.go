package responsive

// State represents the current state of a Resolver.
type State int32

const (
	// StateLoading indicates the Resolver has not evaluated the viewport yet.
	StateLoading State = iota

	// StateMatched indicates a breakpoint matches and has a mapped value.
	StateMatched

	// StateUnmatched indicates no breakpoint matches, or the matching
	// breakpoint has no mapped value. The resolved value is the no-match
	// sentinel.
	StateUnmatched

	// StateClosed indicates the Resolver was closed and no longer follows
	// viewport changes.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMatched:
		return "matched"
	case StateUnmatched:
		return "unmatched"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
