// SPDX-License-Identifier: MPL-2.0

// Package resolve walks command-line tokens against a filesystem-backed
// command tree and classifies the outcome. Directories are containers
// (command groups), executable files are leaves (runnable commands), and
// an executable named "sh-<token>" is a fallback leaf that must be run
// through shell evaluation.
//
// The resolver is pure with respect to program state: it performs read-only
// filesystem probes through the Probe interface and returns a Command value.
// It never prints, exits, or mutates shared state.
package resolve
