// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runner

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"subdue/pkg/types"
)

// ExecRunner replaces the current process image with the command, the
// classic execvp dispatch for sub-style launchers. On success Run never
// returns; the command inherits the process's open descriptors, so the
// Spec's stream overrides are ignored.
type ExecRunner struct {
	// Shell overrides the shell used for shell-eval leaves.
	Shell string
}

// Name returns the runner name.
func (r *ExecRunner) Name() string { return string(ModeExec) }

// Run replaces the current process. A working-directory override is
// applied before the image swap since exec cannot carry one.
func (r *ExecRunner) Run(_ context.Context, spec Spec) (types.ExitCode, error) {
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

	if spec.Dir != "" {
		if err := os.Chdir(spec.Dir); err != nil {
			return 1, fmt.Errorf("changing to %s: %w", spec.Dir, err)
		}
	}

	if err := syscall.Exec(argv[0], argv, spec.environ()); err != nil {
		return 1, fmt.Errorf("failed to exec %s: %w", argv[0], err)
	}

	// Unreachable: Exec does not return on success.
	return 0, nil
}
