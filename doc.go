/*
Package responsive resolves a value from a set of named breakpoints by
following the size of a viewport.

A breakpoint spec names width ranges. Each entry is either a raw media query
string or a [min, max] pair where false leaves a side open. Normalize turns a
spec into a Set of canonical queries, reporting every entry it cannot use.
A nil spec selects the default table (xxs through xxl).

# Basic Usage

Create a viewport and a Resolver over a value mapping:

	viewport := responsive.NewViewport(600)
	r := responsive.New(viewport, viewport, map[string]string{
	    "sm": "compact",
	    "lg": "wide",
	})

	if err := r.Start(ctx, nil); err != nil {
	    return err
	}
	defer r.Close(ctx)

	v, ok := r.Value() // "compact", true

Custom breakpoints are given as an ordered Spec:

	spec := responsive.Spec{
	    {Name: "small", Value: responsive.Pair(false, 600)},
	    {Name: "large", Value: responsive.Pair(601, false)},
	}
	r.SetSpec(ctx, spec)

When ranges overlap the last matching breakpoint in spec order wins.

# Diagnostics

Invalid entries are skipped and reported through a Reporter. The default
SignalReporter emits DiagnosticError and DiagnosticWarning capitan signals:

	capitan.Hook(responsive.DiagnosticError, func(ctx context.Context, e *capitan.Event) {
	    kind, _ := responsive.KeyKind.From(e)
	    msg, _ := responsive.KeyMessage.From(e)
	    log.Printf("%s: %s", kind, msg)
	})

# Spec Documents

Watch reads spec documents (YAML by default, JSON through JSONCodec) from a
Watcher such as FileWatcher, debouncing rapid edits:

	r := responsive.New(viewport, viewport, values).Debounce(200 * time.Millisecond)
	err := r.Watch(ctx, responsive.NewFileWatcher("breakpoints.yaml"))

# Viewports

Any type implementing Evaluator and Notifier can drive a Resolver. Viewport is
an in-memory implementation for width-only queries; pkg/terminal backs one
with the size of the controlling terminal.
*/
package responsive
