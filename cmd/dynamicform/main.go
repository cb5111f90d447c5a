package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// jQueryURL is loaded ahead of the runtime unless --script overrides it.
const jQueryURL = "https://code.jquery.com/jquery-3.7.1.min.js"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dynamicform",
		Short: "Render repeatable form item groups",
		Long: `dynamicform wraps a captured form body so the browser can add and
remove repeated item rows.

It extracts the first item as a client-side template, serializes the
widget options into a page variable and wires the add/remove buttons.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		renderCmd(),
		initCmd(),
		serveCmd(),
		versionCmd(),
	)

	return rootCmd
}
