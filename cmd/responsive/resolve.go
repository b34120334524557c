package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zoobzio/responsive"
)

func newResolveCmd(common *commonOptions) *cobra.Command {
	opts := &resolveOptions{commonOptions: common}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the value that applies at a given viewport width",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOptions(opts); err != nil {
				return err
			}
			return runResolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ValuesPath, "values", "", "Value mapping keyed by breakpoint name")
	cmd.Flags().Float64VarP(&opts.Width, "width", "w", 0, "Viewport width in pixels")

	return cmd
}

func runResolve(ctx context.Context, out, errOut io.Writer, opts *resolveOptions) error {
	spec, err := opts.loadSpec()
	if err != nil {
		return reportLoadError(errOut, err)
	}
	values, err := opts.loadValues(opts.ValuesPath)
	if err != nil {
		return reportLoadError(errOut, err)
	}

	viewport := responsive.NewViewport(opts.Width)
	r := responsive.New(viewport, viewport, values).Reporter(&printReporter{w: errOut})
	if err := r.Start(ctx, spec); err != nil {
		return err
	}
	defer r.Close(ctx)

	fmt.Fprintln(out, formatResolution(r.Resolution()))
	return nil
}

func formatResolution(res responsive.Resolution[any]) string {
	switch {
	case res.Matched:
		return fmt.Sprintf("%s: %v", res.Breakpoint, res.Value)
	case res.Breakpoint != "":
		return fmt.Sprintf("%s: no value", res.Breakpoint)
	default:
		return "no match"
	}
}
