// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"subdue/internal/resolve"
)

// commandsCmd lists the command tree without running anything.
var commandsCmd = &cobra.Command{
	Use:   "commands [group...]",
	Short: "List available commands",
	Long: `List the commands of the current sub installation.

With group tokens, lists the contents of that command group instead of the
top level.`,
	RunE: runCommands,
}

func runCommands(cmd *cobra.Command, args []string) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	app.applyVerbosity(cfg)

	l, err := app.subLayout(cfg)
	if err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return err
	}

	dir := l.Commands
	heading := l.Name
	if len(args) > 0 {
		command := app.Resolver.Resolve(l.Commands, args)
		if command.Kind != resolve.KindContainer || len(command.Tokens) == 0 {
			return fmt.Errorf("'%s' is not a command group", command.CommandLine())
		}
		dir = command.Path
		heading += " " + command.CommandLine()
	}

	entries := listEntries(resolve.OSProbe{}, dir)
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No commands under %s.\n", dir)
		return nil
	}

	fmt.Fprintf(out, "Commands under %s:\n", CmdStyle.Render(heading))
	printListing(out, entries)
	return nil
}
