// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"subdue/internal/config"
	"subdue/internal/layout"
	"subdue/internal/runner"
	"subdue/pkg/types"
)

type stubConfigProvider struct {
	cfg *config.Config
	err error
}

func (s stubConfigProvider) Load(config.LoadOptions) (*config.Config, error) {
	return s.cfg, s.err
}

type recordingRunner struct {
	name string
	spec runner.Spec
	ran  bool
	code types.ExitCode
	err  error
}

func (r *recordingRunner) Name() string { return r.name }

func (r *recordingRunner) Run(_ context.Context, spec runner.Spec) (types.ExitCode, error) {
	r.ran = true
	r.spec = spec
	return r.code, r.err
}

type stubRunnerFactory struct {
	runner *recordingRunner
	mode   runner.Mode
	shell  string
}

func (f *stubRunnerFactory) ForMode(mode runner.Mode, shell string) (runner.Runner, error) {
	f.mode = mode
	f.shell = shell
	return f.runner, nil
}

type stubLayoutDetector struct {
	l   layout.Layout
	err error
}

func (s stubLayoutDetector) Detect() (layout.Layout, error) { return s.l, s.err }

// newSub builds a sub installation whose command tree mirrors the entries
// (trailing "/" marks a directory, everything else an executable).
func newSub(t *testing.T, entries ...string) layout.Layout {
	t.Helper()
	root := t.TempDir()
	l := layout.New(root).WithName("mysub")
	for _, dir := range []string{l.Bin, l.Commands, l.Lib} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, entry := range entries {
		full := filepath.Join(l.Commands, filepath.FromSlash(entry))
		if entry[len(entry)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("#!/bin/sh\n# Summary: a test command\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

// newTestApp wires an App around a sub installation with canned config
// and a recording runner.
func newTestApp(t *testing.T, l layout.Layout, cfg *config.Config) (*App, *recordingRunner, *stubRunnerFactory, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	rec := &recordingRunner{name: "recording"}
	factory := &stubRunnerFactory{runner: rec}
	var stdout, stderr bytes.Buffer

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.Root == "" {
		cfg.Root = l.Root
	}
	if cfg.Name == "" {
		cfg.Name = l.Name
	}

	app := NewApp(Dependencies{
		Config:  stubConfigProvider{cfg: cfg},
		Runners: factory,
		Layout:  stubLayoutDetector{l: l},
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	return app, rec, factory, &stdout, &stderr
}

func TestDispatchLeaf(t *testing.T) {
	l := newSub(t, "deploy/", "deploy/staging")
	a, rec, factory, _, _ := newTestApp(t, l, nil)

	err := a.Dispatch(context.Background(), DispatchRequest{
		Tokens: []string{"deploy", "staging", "--force", "now"},
	})
	if err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}
	if !rec.ran {
		t.Fatal("runner was not invoked")
	}

	wantArgv := []string{filepath.Join(l.Commands, "deploy", "staging"), "--force", "now"}
	if !reflect.DeepEqual(rec.spec.Argv, wantArgv) {
		t.Errorf("Argv = %q, want %q", rec.spec.Argv, wantArgv)
	}
	if rec.spec.ShellEval {
		t.Error("ShellEval = true for a direct leaf")
	}
	if want := []string{l.Lib, l.Bin}; !reflect.DeepEqual(rec.spec.ExtraPath, want) {
		t.Errorf("ExtraPath = %q, want %q", rec.spec.ExtraPath, want)
	}
	if rec.spec.Env["SUBDUE_ROOT"] != l.Root {
		t.Errorf("SUBDUE_ROOT = %q, want %q", rec.spec.Env["SUBDUE_ROOT"], l.Root)
	}
	if factory.mode != runner.ModeExec {
		t.Errorf("runner mode = %q, want %q (default)", factory.mode, runner.ModeExec)
	}
}

func TestDispatchShellEvalLeaf(t *testing.T) {
	l := newSub(t, "sh-env")
	a, rec, _, _, _ := newTestApp(t, l, nil)

	err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"env", "prod"}})
	if err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}
	if !rec.spec.ShellEval {
		t.Error("ShellEval = false, want true for an sh- leaf")
	}
	wantArgv := []string{filepath.Join(l.Commands, "sh-env"), "prod"}
	if !reflect.DeepEqual(rec.spec.Argv, wantArgv) {
		t.Errorf("Argv = %q, want %q", rec.spec.Argv, wantArgv)
	}
}

func TestDispatchLeafExitCode(t *testing.T) {
	l := newSub(t, "fail")
	a, rec, _, _, _ := newTestApp(t, l, nil)
	rec.code = 7

	err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"fail"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Dispatch() = %v, want ExitError", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("Code = %v, want 7", exitErr.Code)
	}
}

func TestDispatchLeafRunnerFailure(t *testing.T) {
	l := newSub(t, "broken")
	a, rec, _, _, _ := newTestApp(t, l, nil)
	rec.err = errors.New("exec format error")

	err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"broken"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Dispatch() = %v, want ExitError", err)
	}
	if exitErr.Err == nil {
		t.Error("ExitError.Err should carry the runner failure")
	}
}

func TestDispatchNotFound(t *testing.T) {
	l := newSub(t, "deploy/")
	a, rec, _, _, stderr := newTestApp(t, l, nil)

	err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"deploy", "bogus", "later"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Dispatch() = %v, want ExitError with code 1", err)
	}
	if rec.ran {
		t.Error("runner must not run for a missing command")
	}
	if want := "mysub: no such command 'deploy bogus'"; !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
	}
}

func TestDispatchContainer(t *testing.T) {
	l := newSub(t, "deploy/", "deploy/staging", "deploy/production")
	a, rec, _, _, stderr := newTestApp(t, l, nil)

	err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"deploy"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Dispatch() = %v, want ExitError with code 1", err)
	}
	if rec.ran {
		t.Error("runner must not run for a container")
	}

	out := stderr.String()
	if want := "mysub: can't run a container 'deploy'"; !strings.Contains(out, want) {
		t.Errorf("stderr = %q, want it to contain %q", out, want)
	}
	// The failed dispatch should still show what the group offers.
	if !strings.Contains(out, "staging") || !strings.Contains(out, "production") {
		t.Errorf("stderr = %q, want container listing", out)
	}
}

func TestDispatchFlagTruncation(t *testing.T) {
	l := newSub(t, "deploy/")
	a, _, _, _, stderr := newTestApp(t, l, nil)

	err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"deploy", "--help"}})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Dispatch() = %v, want ExitError with code 1", err)
	}
	if want := "can't run a container 'deploy'"; !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
	}
}

func TestDispatchRespectsRunnerConfig(t *testing.T) {
	l := newSub(t, "task")
	cfg := config.DefaultConfig()
	cfg.Runner = "virtual"
	cfg.Shell = "/bin/zsh"
	cfg.PrependPath = false
	a, rec, factory, _, _ := newTestApp(t, l, cfg)

	if err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"task"}}); err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}
	if factory.mode != runner.ModeVirtual {
		t.Errorf("mode = %q, want %q", factory.mode, runner.ModeVirtual)
	}
	if factory.shell != "/bin/zsh" {
		t.Errorf("shell = %q, want %q", factory.shell, "/bin/zsh")
	}
	if rec.spec.ExtraPath != nil {
		t.Errorf("ExtraPath = %q, want nil when prepend_path is off", rec.spec.ExtraPath)
	}
}

func TestDispatchMissingCommandsDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir() // no commands/ inside
	a, _, _, _, _ := newTestApp(t, layout.New(cfg.Root), cfg)

	if err := a.Dispatch(context.Background(), DispatchRequest{Tokens: []string{"x"}}); err == nil {
		t.Fatal("Dispatch() should fail without a commands directory")
	}
}
