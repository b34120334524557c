package responsive

import (
	"context"
	"sort"
)

// Normalize converts a breakpoint spec into a canonical Set.
//
// A nil spec selects DefaultSpec and skips the coverage check. Otherwise every
// key of values missing from spec is reported as KindUndefinedBreakpoint, and
// each entry is validated: query strings pass through unchanged, range pairs
// are converted to min-width/max-width queries, and malformed entries are
// reported and left out of the Set. Normalize never fails as a whole.
//
// A nil reporter discards diagnostics.
func Normalize[V any](ctx context.Context, values map[string]V, spec Spec, reporter Reporter) *Set {
	if reporter == nil {
		reporter = discard
	}
	if spec == nil {
		return normalizeEntries(ctx, DefaultSpec(), reporter)
	}
	CheckCoverage(ctx, values, spec, reporter)
	return normalizeEntries(ctx, spec, reporter)
}

// CheckCoverage reports a KindUndefinedBreakpoint warning for every key of
// values that spec does not define. Keys are checked in sorted order.
func CheckCoverage[V any](ctx context.Context, values map[string]V, spec Spec, reporter Reporter) {
	if reporter == nil {
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !spec.Has(k) {
			reporter.Report(ctx, Diagnostic{
				Kind:  KindUndefinedBreakpoint,
				Key:   k,
				Value: values[k],
			})
		}
	}
}

func normalizeEntries(ctx context.Context, spec Spec, reporter Reporter) *Set {
	set := &Set{breakpoints: make([]Breakpoint, 0, len(spec))}
	for _, e := range spec {
		query, d := canonicalize(e)
		if d != nil {
			reporter.Report(ctx, *d)
			continue
		}
		set.put(e.Name, query)
	}
	return set
}

// canonicalize returns the canonical query for a single entry, or the
// diagnostic explaining why the entry is unusable.
func canonicalize(e Entry) (string, *Diagnostic) {
	if q, ok := e.Value.(string); ok {
		return q, nil
	}

	pair, ok := asSequence(e.Value)
	if !ok {
		return "", &Diagnostic{
			Kind:  KindBreakpointType,
			Key:   e.Name,
			Value: e.Value,
			Type:  typeName(e.Value),
		}
	}
	if len(pair) != 2 {
		return "", &Diagnostic{Kind: KindLength, Key: e.Name, Value: e.Value, Length: len(pair)}
	}

	var (
		bounds  [2]float64
		bounded [2]bool
	)
	for i, v := range pair {
		if n, ok := toFloat(v); ok {
			bounds[i], bounded[i] = n, true
			continue
		}
		if b, ok := v.(bool); ok && !b {
			continue
		}
		return "", &Diagnostic{Kind: KindType, Key: e.Name, Value: e.Value, Type: typeName(v)}
	}

	switch {
	case !bounded[0] && !bounded[1]:
		return "", &Diagnostic{Kind: KindBothFalse, Key: e.Name, Value: e.Value}
	case !bounded[0]:
		return MaxWidth(bounds[1]), nil
	case !bounded[1]:
		return MinWidth(bounds[0]), nil
	default:
		return WidthBetween(bounds[0], bounds[1]), nil
	}
}

var discard = ReporterFunc(func(context.Context, Diagnostic) {})
