// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"subdue/internal/config"
	"subdue/internal/layout"
)

var (
	initForce       bool
	initWriteConfig bool

	// initCmd scaffolds a new sub installation.
	initCmd = &cobra.Command{
		Use:   "init <dir>",
		Short: "Scaffold a new sub installation",
		Long: `Scaffold a new sub installation at the given directory.

Creates the bin/, commands/ and lib/ directories, a sample command, and a
README shown by the sub's help. With --write-config a default config.toml
is also written to the platform config directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "scaffold into a non-empty directory")
	initCmd.Flags().BoolVar(&initWriteConfig, "write-config", false, "also write a default config.toml")
}

const sampleCommand = `#!/bin/sh
# Summary: print a greeting

echo "hello from $SUBDUE_ROOT"
`

const sampleShellEvalCommand = `# Summary: change to the sub's root directory
# Sourced by a shell, so it may use functions and change directories.

cd "$SUBDUE_ROOT" || exit 1
pwd
`

const sampleReadme = `# %s

A sub: a tree of commands dispatched by subdue.

Add executables under commands/ to create commands; add directories to
create command groups. Name a script sh-<name> when it must be evaluated
by a shell instead of being executed directly.
`

func runInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 && !initForce {
		return fmt.Errorf("directory '%s' is not empty. Use --force to scaffold anyway", root)
	}

	l := layout.New(root)
	for _, dir := range []string{l.Bin, l.Commands, l.Lib} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	files := []struct {
		path string
		body string
		mode os.FileMode
	}{
		{filepath.Join(l.Commands, "hello"), sampleCommand, 0o755},
		{filepath.Join(l.Commands, "sh-root"), sampleShellEvalCommand, 0o755},
		{filepath.Join(root, "README.md"), fmt.Sprintf(sampleReadme, l.Name), 0o644},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.body), f.mode); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}

	if initWriteConfig {
		path, err := writeDefaultConfig(root)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", SuccessStyle.Render("✓"), path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Created sub '%s' at %s\n", SuccessStyle.Render("✓"), l.Name, root)
	fmt.Fprintln(out)
	fmt.Fprintln(out, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintf(out, "  1. Install the subdue binary into %s\n", l.Bin)
	fmt.Fprintf(out, "  2. Add executables under %s\n", l.Commands)
	fmt.Fprintf(out, "  3. Run '%s hello' to try the sample command\n", l.Name)

	return nil
}

// writeDefaultConfig marshals the default configuration, pinned to the new
// root, into the platform config directory. An existing file is kept.
func writeDefaultConfig(root string) (string, error) {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(cfgDir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	cfg := config.DefaultConfig()
	cfg.Root = root

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
