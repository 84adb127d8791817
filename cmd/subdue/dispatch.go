// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"subdue/internal/config"
	"subdue/internal/layout"
	"subdue/internal/resolve"
	"subdue/internal/runner"
)

// Dispatch resolves the request's tokens against the sub's command tree
// and acts on the outcome: a leaf runs through the configured runner, a
// container and a miss are reported on stderr with exit code 1.
func (a *App) Dispatch(ctx context.Context, req DispatchRequest) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.applyVerbosity(cfg)

	l, err := a.subLayout(cfg)
	if err != nil {
		return fmt.Errorf("locating sub installation: %w", err)
	}
	if err := l.Validate(); err != nil {
		return err
	}

	command := a.Resolver.Resolve(l.Commands, req.Tokens)
	a.logger.Debug("resolved",
		"kind", command.Kind,
		"tokens", command.CommandLine(),
		"path", command.Path,
		"shell_eval", command.ShellEval,
	)

	switch command.Kind {
	case resolve.KindLeaf:
		return a.runLeaf(ctx, cfg, l, command)

	case resolve.KindContainer:
		fmt.Fprintf(a.stderr, "%s: can't run a container '%s'\n", l.Name, command.CommandLine())
		// The group itself is not runnable, but its contents tell the user
		// what would be.
		a.printContainerHelp(l, command)
		return &ExitError{Code: 1}

	default:
		fmt.Fprintf(a.stderr, "%s: no such command '%s'\n", l.Name, command.CommandLine())
		return &ExitError{Code: 1}
	}
}

// runLeaf hands a resolved leaf to the configured runner and converts its
// exit status into the process exit code.
func (a *App) runLeaf(ctx context.Context, cfg *config.Config, l layout.Layout, command resolve.Command) error {
	r, err := a.Runners.ForMode(runner.Mode(cfg.Runner), cfg.Shell)
	if err != nil {
		return err
	}

	spec := runner.Spec{
		Argv:      command.Argv(),
		ShellEval: command.ShellEval,
		Env: map[string]string{
			"SUBDUE_ROOT":     l.Root,
			"SUBDUE_COMMANDS": l.Commands,
			"SUBDUE_LIB":      l.Lib,
		},
		Stdout: a.stdout,
		Stderr: a.stderr,
	}
	if cfg.PrependPath {
		spec.ExtraPath = l.SearchPath()
	}

	a.logger.Debug("dispatching", "runner", r.Name(), "argv", spec.Argv)

	code, err := r.Run(ctx, spec)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}
