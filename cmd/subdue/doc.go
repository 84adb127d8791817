// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI layer: the Cobra root command that
// dispatches tokens against the command tree, plus the static maintenance
// subcommands (init, config, commands).
package cmd
