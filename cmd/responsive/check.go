package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zoobzio/responsive"
)

func newCheckCmd(common *commonOptions) *cobra.Command {
	opts := &checkOptions{commonOptions: common}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Normalize a breakpoint spec and report invalid entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOptions(opts); err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ValuesPath, "values", "",
		"Value mapping to check against the spec for undefined breakpoints")

	return cmd
}

func runCheck(ctx context.Context, out io.Writer, opts *checkOptions) error {
	spec, err := opts.loadSpec()
	if err != nil {
		return reportLoadError(out, err)
	}
	values, err := opts.loadValues(opts.ValuesPath)
	if err != nil {
		return reportLoadError(out, err)
	}

	rep := &printReporter{w: out}
	set := responsive.Normalize(ctx, values, spec, rep)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, bp := range set.Breakpoints() {
		fmt.Fprintf(tw, "%s\t%s\n", bp.Name, bp.Query)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if n := rep.errorCount(); n > 0 {
		return fmt.Errorf("%d invalid breakpoint entries", n)
	}
	return nil
}

// reportLoadError prints a document-level diagnostic before returning it.
func reportLoadError(out io.Writer, err error) error {
	var d *responsive.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(out, d.Error())
	}
	return err
}

// printReporter writes each diagnostic on its own line.
type printReporter struct {
	mu     sync.Mutex
	w      io.Writer
	errors int
}

func (p *printReporter) Report(_ context.Context, d responsive.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d.Severity() == responsive.SeverityError {
		p.errors++
	}
	fmt.Fprintln(p.w, d.Error())
}

func (p *printReporter) errorCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors
}
