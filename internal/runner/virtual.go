// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"subdue/pkg/types"
)

// Scripts the embedded interpreter evaluates. Both receive the leaf path
// as $1 and the user arguments after it. Direct leaves are exec'd through
// the interpreter's exec handler (which handles binaries and shebang
// scripts alike); shell-eval leaves are sourced so the evaluating shell
// runs them with the user arguments as positional parameters.
const (
	virtualInvoke = `exec "$@"`
	virtualSource = `s="$1"; shift; . "$s"`
)

// VirtualRunner executes commands through the embedded mvdan/sh POSIX
// interpreter. It needs no shell on the host, which makes shell-eval
// leaves work even on minimal systems; semantics are spawn-and-wait.
type VirtualRunner struct{}

// Name returns the runner name.
func (r *VirtualRunner) Name() string { return string(ModeVirtual) }

// Run interprets the spec and blocks until it finishes.
func (r *VirtualRunner) Run(ctx context.Context, spec Spec) (types.ExitCode, error) {
	if err := spec.validate(); err != nil {
		return 1, err
	}

	src := virtualInvoke
	if spec.ShellEval {
		src = virtualSource
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(src), spec.Argv[0])
	if err != nil {
		return 1, fmt.Errorf("internal error: parsing dispatch script: %w", err)
	}

	stdin, stdout, stderr := spec.stdio()

	// The leaf path and its arguments become $1, $2, ... of the dispatch
	// script. "--" stops the interpreter from eating leading dashes.
	params := append([]string{"--"}, spec.Argv...)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(spec.environ()...)),
		interp.StdIO(stdin, stdout, stderr),
		interp.Params(params...),
	}
	if spec.Dir != "" {
		opts = append(opts, interp.Dir(spec.Dir))
	}

	shell, err := interp.New(opts...)
	if err != nil {
		return 1, fmt.Errorf("creating interpreter: %w", err)
	}

	if err := shell.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return types.ExitCode(status), nil
		}
		return 1, fmt.Errorf("command failed: %w", err)
	}

	return 0, nil
}
