// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// configCmd shows the effective configuration after file, environment and
// defaults are merged.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Configuration"))
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	if l, err := app.subLayout(cfg); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, TitleStyle.Render("Sub installation"))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "name     = %q\n", l.Name)
		fmt.Fprintf(out, "root     = %q\n", l.Root)
		fmt.Fprintf(out, "commands = %q\n", l.Commands)
		fmt.Fprintf(out, "lib      = %q\n", l.Lib)
	}

	return nil
}
