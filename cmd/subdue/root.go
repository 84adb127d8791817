// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug diagnostics. The dispatch path reads it from
	// configuration; static subcommands also accept --verbose.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// app is the composition root shared by all command handlers.
	app = NewApp(Dependencies{})

	// rootCmd is the dispatcher itself. Flag parsing is disabled: tokens
	// belong to the command tree, and anything after a resolved command is
	// opaque argv for that command, never flags of ours.
	rootCmd = &cobra.Command{
		Use:   "subdue [command [args...]]",
		Short: "A filesystem-backed hierarchical command dispatcher",
		Long: TitleStyle.Render("subdue") + SubtitleStyle.Render(" - a filesystem-backed hierarchical command dispatcher") + `

subdue resolves command-line tokens against a directory tree: directories
are command groups, executable files are commands, and an executable named
'sh-<token>' is a fallback evaluated through a shell. Everything after the
resolved command is passed to it untouched.

A sub installation has three fixed directories under its root:

  bin/       the launcher
  commands/  the command tree
  lib/       helpers put on the command's PATH

` + SubtitleStyle.Render("Examples:") + `
  subdue deploy staging --force   Run commands/deploy/staging with --force
  subdue deploy                   Show what the deploy group contains
  subdue init ~/tools/mysub       Scaffold a new sub installation`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE:               runRoot,
	}
)

func init() {
	// Children parse these normally; the dispatch path takes them from the
	// SUBDUE_* environment instead since its flag parsing is disabled.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(commandsCmd)
}

// runRoot implements the dispatch surface: no tokens or a leading help
// flag shows help, a leading version flag prints the version, everything
// else goes to the resolver.
func runRoot(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		cfgFile = os.Getenv("SUBDUE_CONFIG_FILE")
	}

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		return runHelp(cmd)
	}
	if args[0] == "--version" {
		fmt.Fprintf(app.stdout, "subdue %s\n", getVersionString())
		return nil
	}

	return app.Dispatch(cmd.Context(), DispatchRequest{Tokens: args})
}

// runHelp prefers the sub's own help (README plus command listing) and
// falls back to the static usage text when no installation is found.
func runHelp(cmd *cobra.Command) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	app.applyVerbosity(cfg)

	l, err := app.subLayout(cfg)
	if err == nil && l.Validate() == nil {
		app.printSubHelp(l, cfg.UI.ColorScheme)
		return nil
	}

	return cmd.Help()
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main() once.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(printExecuteError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// printExecuteError suppresses decoration for exit-code-only errors whose
// diagnostics were already written during dispatch.
func printExecuteError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error:"), err)
}
