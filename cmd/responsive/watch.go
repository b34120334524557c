package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zoobzio/responsive"
	"github.com/zoobzio/responsive/pkg/terminal"
)

func newWatchCmd(common *commonOptions) *cobra.Command {
	opts := &watchOptions{commonOptions: common}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the terminal width and print the value whenever it changes",
		Long: "Follow the terminal width and print the value whenever it changes.\n" +
			"When --spec is given the file is watched and reloaded on every save.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOptions(opts); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ValuesPath, "values", "", "Value mapping keyed by breakpoint name")
	cmd.Flags().Float64Var(&opts.CellWidth, "cell-width", 1, "Pixels per terminal column")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", terminal.DefaultDebounce,
		"Delay before resizes and spec edits are applied")

	return cmd
}

func runWatch(ctx context.Context, out, errOut io.Writer, opts *watchOptions) error {
	values, err := opts.loadValues(opts.ValuesPath)
	if err != nil {
		return reportLoadError(errOut, err)
	}

	viewport := terminal.New(int(os.Stdout.Fd())).
		CellWidth(opts.CellWidth).
		Debounce(opts.Debounce)
	if !viewport.IsTerminal() {
		return errors.New("stdout is not a terminal")
	}
	if err := viewport.Sync(); err != nil {
		return err
	}

	r := responsive.New(viewport, viewport, values).
		Reporter(&printReporter{w: errOut}).
		Codec(opts.codec()).
		Debounce(opts.Debounce).
		OnChange(func(_ context.Context, _, curr responsive.Resolution[any]) {
			fmt.Fprintln(out, formatResolution(curr))
		})
	defer r.Close(context.Background())

	if opts.SpecPath == "" {
		err = r.Start(ctx, nil)
	} else {
		err = r.Watch(ctx, responsive.NewFileWatcher(opts.SpecPath))
	}
	// A rejected document is already reported; keep waiting for a fix.
	var d *responsive.Diagnostic
	if err != nil && !errors.As(err, &d) {
		return err
	}

	return viewport.Run(ctx)
}
