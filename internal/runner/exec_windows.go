// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runner

import (
	"context"

	"subdue/pkg/types"
)

// ExecRunner approximates process replacement on Windows, which has no
// exec system call: the command is spawned, awaited, and its exit code
// passed through.
type ExecRunner struct {
	// Shell overrides the shell used for shell-eval leaves.
	Shell string
}

// Name returns the runner name.
func (r *ExecRunner) Name() string { return string(ModeExec) }

// Run delegates to spawn-and-wait semantics.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) (types.ExitCode, error) {
	spawn := &SpawnRunner{Shell: r.Shell}
	return spawn.Run(ctx, spec)
}
