package responsive

import (
	"encoding/json"
	"reflect"
)

// Entry is a single user-supplied breakpoint definition.
//
// Value is either a query string, used as-is, or a two element range pair
// [min, max] whose elements are numbers or false, where false leaves that
// side unbounded. Any other value is reported by Normalize and skipped.
type Entry struct {
	Name  string
	Value any
}

// Spec is an ordered breakpoint specification. Order decides which
// breakpoint wins when ranges overlap: the last match wins.
//
// A nil Spec selects the default table. A non-nil empty Spec defines no
// breakpoints at all.
type Spec []Entry

// Pair builds a range pair for an Entry. Pass false for an unbounded side.
//
//	responsive.Spec{
//	    {Name: "small", Value: responsive.Pair(false, 600)},
//	    {Name: "large", Value: responsive.Pair(601, false)},
//	}
func Pair(minWidth, maxWidth any) []any {
	return []any{minWidth, maxWidth}
}

// Names returns the entry names in declaration order.
func (s Spec) Names() []string {
	names := make([]string, 0, len(s))
	for _, e := range s {
		names = append(names, e.Name)
	}
	return names
}

// Has reports whether the spec defines name.
func (s Spec) Has(name string) bool {
	for _, e := range s {
		if e.Name == name {
			return true
		}
	}
	return false
}

// DefaultSpec returns the standard seven bucket table, narrowest first.
// The buckets are contiguous and do not overlap.
func DefaultSpec() Spec {
	return Spec{
		{Name: "xxs", Value: MaxWidth(319)},
		{Name: "xs", Value: WidthBetween(320, 480)},
		{Name: "sm", Value: WidthBetween(481, 768)},
		{Name: "md", Value: WidthBetween(769, 1024)},
		{Name: "lg", Value: WidthBetween(1025, 1200)},
		{Name: "xl", Value: WidthBetween(1201, 1699)},
		{Name: "xxl", Value: MinWidth(1700)},
	}
}

// Breakpoint is a named canonical query.
type Breakpoint struct {
	Name  string
	Query string
}

// Set is a normalized, ordered breakpoint set. Each call to Normalize
// returns a new Set; the Resolver ties its viewport subscription to that
// identity.
type Set struct {
	breakpoints []Breakpoint
}

// Len returns the number of breakpoints in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.breakpoints)
}

// Breakpoints returns a copy of the breakpoints in evaluation order.
func (s *Set) Breakpoints() []Breakpoint {
	if s == nil {
		return nil
	}
	out := make([]Breakpoint, len(s.breakpoints))
	copy(out, s.breakpoints)
	return out
}

// Names returns the breakpoint names in evaluation order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.breakpoints))
	for i, bp := range s.breakpoints {
		names[i] = bp.Name
	}
	return names
}

// Query returns the canonical query for name.
func (s *Set) Query(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, bp := range s.breakpoints {
		if bp.Name == name {
			return bp.Query, true
		}
	}
	return "", false
}

// put adds or replaces a breakpoint. A replaced breakpoint keeps its
// original position.
func (s *Set) put(name, query string) {
	for i := range s.breakpoints {
		if s.breakpoints[i].Name == name {
			s.breakpoints[i].Query = query
			return
		}
	}
	s.breakpoints = append(s.breakpoints, Breakpoint{Name: name, Query: query})
}

// toFloat converts any Go numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asSequence returns the elements of a slice or array value.
func asSequence(v any) ([]any, bool) {
	if seq, ok := v.([]any); ok {
		return seq, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
