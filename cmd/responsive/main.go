// Command responsive checks breakpoint specs and resolves responsive values
// against a given width or the live terminal.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"
)

var version = "0.1.0"

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &commonOptions{}

	root := &cobra.Command{
		Use:           "responsive",
		Short:         "Check breakpoint specs and resolve responsive values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.Verbose {
				hookLogging(log.New(stderr, "responsive: ", log.Ltime))
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.SpecPath, "spec", "s", "",
		"Breakpoint spec document (YAML or JSON). Defaults to the built-in table.")
	root.PersistentFlags().StringVarP(&opts.Format, "format", "f", "yaml",
		"Document format: 'yaml' (also reads JSON) or 'json'")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"Log resolver events to stderr")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of responsive",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "responsive version %s\n", version)
		},
	})

	return root
}

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	capitan.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
