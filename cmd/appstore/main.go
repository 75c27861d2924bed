package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/appstore/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	noColor    bool
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "appstore",
		Short: "Inspect and drive the admin shell UI state store",
		Long: `appstore runs the admin shell's UI state store outside the browser.

It reads appstore.json (or APPSTORE_* environment variables) to pick a
preference backend, then lets you:

  • simulate viewport, locale, and reload sequences
  • serve an HTTP inspector with a live WebSocket stream
  • read and write the persisted locale`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to appstore.json or its directory")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		simulateCmd(&flags),
		inspectCmd(&flags),
		localeCmd(&flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
