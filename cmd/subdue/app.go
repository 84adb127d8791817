// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"subdue/internal/config"
	"subdue/internal/layout"
	"subdue/internal/resolve"
	"subdue/internal/runner"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: command handlers receive an App reference and
	// delegate through its service interfaces, so tests can swap in fakes.
	App struct {
		Config   config.Provider
		Resolver ResolverService
		Runners  RunnerFactory
		Layout   LayoutDetector
		stdout   io.Writer
		stderr   io.Writer
		logger   *log.Logger
	}

	// Dependencies defines the injection points for building an App.
	// Nil fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Resolver ResolverService
		Runners  RunnerFactory
		Layout   LayoutDetector
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ResolverService resolves a token sequence against the command tree
	// rooted at a directory.
	ResolverService interface {
		Resolve(root string, tokens []string) resolve.Command
	}

	// RunnerFactory supplies the Runner for a configured mode and shell
	// override.
	RunnerFactory interface {
		ForMode(mode runner.Mode, shell string) (runner.Runner, error)
	}

	// LayoutDetector locates the sub installation when configuration does
	// not pin a root explicitly.
	LayoutDetector interface {
		Detect() (layout.Layout, error)
	}

	// DispatchRequest captures one dispatch as an immutable value: the raw
	// command-line tokens and the cancellation context they run under.
	DispatchRequest struct {
		Tokens []string
	}

	runnerFactory  struct{}
	layoutDetector struct{}
)

// ForMode returns the production runner for a mode.
func (runnerFactory) ForMode(mode runner.Mode, shell string) (runner.Runner, error) {
	return runner.ForMode(mode, shell)
}

// Detect locates the sub from the running executable.
func (layoutDetector) Detect() (layout.Layout, error) {
	return layout.Detect()
}

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Resolver == nil {
		deps.Resolver = resolve.New(nil)
	}
	if deps.Runners == nil {
		deps.Runners = runnerFactory{}
	}
	if deps.Layout == nil {
		deps.Layout = layoutDetector{}
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          config.AppName,
	})

	return &App{
		Config:   deps.Config,
		Resolver: deps.Resolver,
		Runners:  deps.Runners,
		Layout:   deps.Layout,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		logger:   logger,
	}
}

// loadConfig loads configuration, honoring the --config override stored on
// the root command. Load failures surface as warnings and defaults keep
// the dispatcher operational, except for explicitly requested files.
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := a.Config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		if cfgFile != "" {
			// The user named this file; do not silently fall back.
			return nil, err
		}
		a.logger.Warn("failed to load config, using defaults", "err", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

// subLayout resolves the sub installation for a loaded configuration:
// explicit root when configured, executable-relative detection otherwise.
func (a *App) subLayout(cfg *config.Config) (layout.Layout, error) {
	var l layout.Layout
	if cfg.Root != "" {
		l = layout.New(cfg.Root)
	} else {
		detected, err := a.Layout.Detect()
		if err != nil {
			return layout.Layout{}, err
		}
		l = detected
	}
	if cfg.Name != "" {
		l = l.WithName(cfg.Name)
	}
	return l, nil
}

// applyVerbosity raises the log level when verbose output is requested via
// configuration or the --verbose flag.
func (a *App) applyVerbosity(cfg *config.Config) {
	if verbose || (cfg != nil && cfg.UI.Verbose) {
		a.logger.SetLevel(log.DebugLevel)
	}
}
