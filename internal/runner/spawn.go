// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"subdue/pkg/types"
)

// SpawnRunner executes commands as child processes and waits for them,
// reporting their exit status to the caller. This is the default runner.
type SpawnRunner struct {
	// Shell overrides the shell used for shell-eval leaves.
	Shell string
}

// Name returns the runner name.
func (r *SpawnRunner) Name() string { return string(ModeSpawn) }

// Run spawns the command and blocks until it exits.
func (r *SpawnRunner) Run(ctx context.Context, spec Spec) (types.ExitCode, error) {
	if err := spec.validate(); err != nil {
		return 1, err
	}

	argv := spec.Argv
	if spec.ShellEval {
		shell, err := findShell(r.Shell)
		if err != nil {
			return 1, fmt.Errorf("shell-eval command needs a shell: %w", err)
		}
		argv = shellArgv(shell, spec)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.environ()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = spec.stdio()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return types.ExitCode(exitErr.ExitCode()), nil
		}
		return 1, fmt.Errorf("failed to execute %s: %w", spec.Argv[0], err)
	}

	return 0, nil
}
