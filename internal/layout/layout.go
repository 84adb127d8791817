// SPDX-License-Identifier: MPL-2.0

// Package layout computes the directory structure of a sub installation.
// A sub is rooted at a directory containing bin/ (the launcher), commands/
// (the tree the resolver walks) and lib/ (helper scripts shared by
// commands). The layout is plain data; nothing here touches the tree.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// BinDirName holds the sub launcher binary.
	BinDirName = "bin"
	// CommandsDirName is the root of the command tree.
	CommandsDirName = "commands"
	// LibDirName holds helper scripts available to running commands.
	LibDirName = "lib"
)

// Layout describes one sub installation.
type Layout struct {
	// Name is the display name used in error messages, normally the
	// basename of the launcher.
	Name string
	// Root is the installation root.
	Root string
	// Bin, Commands and Lib are the fixed subdirectories of Root.
	Bin      string
	Commands string
	Lib      string
}

// New computes a Layout for the given root. The display name defaults to
// the root's basename; override with WithName.
func New(root string) Layout {
	return Layout{
		Name:     filepath.Base(root),
		Root:     root,
		Bin:      filepath.Join(root, BinDirName),
		Commands: filepath.Join(root, CommandsDirName),
		Lib:      filepath.Join(root, LibDirName),
	}
}

// WithName returns a copy of the Layout with the display name replaced.
func (l Layout) WithName(name string) Layout {
	l.Name = name
	return l
}

// Detect derives the Layout from the location of the running executable,
// which is expected to live in <root>/bin. This replaces runtime call-stack
// introspection with an explicit convention: callers that install the
// binary elsewhere pass the root via configuration instead.
func Detect() (Layout, error) {
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, fmt.Errorf("locating executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving executable path: %w", err)
	}

	bin := filepath.Dir(exe)
	l := New(filepath.Dir(bin))
	return l.WithName(filepath.Base(exe)), nil
}

// SearchPath returns the directories the host prepends to the child
// process search path before dispatch: lib first, then bin. The caller
// hands these to the runner explicitly; process-wide environment is never
// mutated here.
func (l Layout) SearchPath() []string {
	return []string{l.Lib, l.Bin}
}

// Validate reports whether the commands directory exists, which is the
// minimum a usable sub needs.
func (l Layout) Validate() error {
	info, err := os.Stat(l.Commands)
	if err != nil {
		return fmt.Errorf("sub %q has no commands directory at %s: %w", l.Name, l.Commands, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("sub %q: %s is not a directory", l.Name, l.Commands)
	}
	return nil
}
