// SPDX-License-Identifier: MPL-2.0

// Package runner turns a resolved argument vector into a running process.
// Three implementations cover the host-selectable execution semantics:
// ExecRunner replaces the current process image, SpawnRunner spawns a child
// and waits for its exit status, and VirtualRunner interprets the command
// through an embedded POSIX shell without touching the system shell.
//
// The resolver has no opinion about which runner is used; the host
// application picks one via configuration.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"subdue/pkg/types"
)

// Mode names a runner implementation in configuration.
type Mode string

const (
	// ModeExec replaces the current process image (POSIX execvp semantics).
	ModeExec Mode = "exec"
	// ModeSpawn spawns a child process and waits for its exit status.
	ModeSpawn Mode = "spawn"
	// ModeVirtual interprets the command through the embedded shell.
	ModeVirtual Mode = "virtual"
)

// Spec describes one dispatch. Argv is the resolved leaf path followed by
// its verbatim trailing arguments; it is never parsed here.
type Spec struct {
	// Argv is the non-empty argument vector: leaf path first.
	Argv []string
	// Dir is the working directory for the command. Empty keeps the
	// caller's working directory.
	Dir string
	// ExtraPath is prepended to the child's PATH, highest priority first.
	// The sub's lib and bin directories arrive here; process-wide
	// environment is never mutated.
	ExtraPath []string
	// Env holds additional environment variables for the child.
	Env map[string]string
	// ShellEval marks a leaf found via the sh- naming fallback: it must be
	// evaluated by a shell rather than invoked directly.
	ShellEval bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes a Spec. Run blocks until the command finishes and
// returns its exit code; ExecRunner.Run only returns on failure to start.
type Runner interface {
	// Name identifies the runner in diagnostics.
	Name() string
	// Run executes the spec and returns the command's exit code.
	Run(ctx context.Context, spec Spec) (types.ExitCode, error)
}

// ForMode returns the Runner implementation for a configuration mode.
// shell overrides the shell used for sh- leaves; the virtual runner
// ignores it since it carries its own interpreter.
func ForMode(mode Mode, shell string) (Runner, error) {
	switch mode {
	case ModeExec:
		return &ExecRunner{Shell: shell}, nil
	case ModeSpawn, "":
		return &SpawnRunner{Shell: shell}, nil
	case ModeVirtual:
		return &VirtualRunner{}, nil
	default:
		return nil, fmt.Errorf("unknown runner mode %q (valid: exec, spawn, virtual)", mode)
	}
}

// validate rejects specs no runner can act on.
func (s Spec) validate() error {
	if len(s.Argv) == 0 {
		return fmt.Errorf("empty argument vector")
	}
	return nil
}

// stdio fills unset streams with the process defaults.
func (s Spec) stdio() (io.Reader, io.Writer, io.Writer) {
	in, out, errw := s.Stdin, s.Stdout, s.Stderr
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errw == nil {
		errw = os.Stderr
	}
	return in, out, errw
}

// environ builds the child environment: the current environment with PATH
// prepends and extra variables applied. Entries are deduplicated because
// exec semantics differ between platforms on repeated keys.
func (s Spec) environ() []string {
	base := os.Environ()
	out := make([]string, 0, len(base)+len(s.Env))
	index := make(map[string]int, len(base))

	set := func(key, value string) {
		if i, ok := index[key]; ok {
			out[i] = key + "=" + value
			return
		}
		index[key] = len(out)
		out = append(out, key+"="+value)
	}

	for _, kv := range base {
		if eq := strings.IndexByte(kv, '='); eq > 0 {
			set(kv[:eq], kv[eq+1:])
		}
	}

	if len(s.ExtraPath) > 0 {
		path := strings.Join(s.ExtraPath, string(os.PathListSeparator))
		if current := os.Getenv("PATH"); current != "" {
			path += string(os.PathListSeparator) + current
		}
		set("PATH", path)
	}

	for key, value := range s.Env {
		set(key, value)
	}

	return out
}

// shellArgv wraps a shell-eval spec into a shell invocation. The script is
// sourced so helper functions it defines run in the evaluating shell:
//
//	sh -c 's="$1"; shift; . "$s"' <name> <path> <args...>
func shellArgv(shell string, spec Spec) []string {
	argv := []string{shell}
	argv = append(argv, shellCommandArgs(shell)...)
	argv = append(argv, `s="$1"; shift; . "$s"`, filepath.Base(spec.Argv[0]))
	return append(argv, spec.Argv...)
}

// findShell determines which shell evaluates sh- leaves: the configured
// override, else $SHELL, else the first common shell on PATH.
func findShell(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if runtime.GOOS == "windows" {
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell, nil
	}
	if bash, err := exec.LookPath("bash"); err == nil {
		return bash, nil
	}
	if sh, err := exec.LookPath("sh"); err == nil {
		return sh, nil
	}
	return "", fmt.Errorf("no shell found")
}

// shellCommandArgs returns the flag that makes a shell evaluate its next
// argument as a command string.
func shellCommandArgs(shell string) []string {
	base := filepath.Base(shell)
	// Handle Windows separators even when built for Unix.
	if i := strings.LastIndexByte(base, '\\'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
