// SPDX-License-Identifier: MPL-2.0

package resolve

import "os"

// Probe answers the two read-only filesystem questions the resolver asks.
// Implementations must treat probe failures (permission denied, transient
// I/O errors) the same as absence: the resolver has no error channel, and
// a candidate it cannot inspect is a candidate it cannot use.
type Probe interface {
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
	// IsExecutable reports whether path exists and is a runnable file.
	IsExecutable(path string) bool
}

// OSProbe is the production Probe backed by the host filesystem.
type OSProbe struct{}

// IsDir reports whether path is an existing directory.
func (OSProbe) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsExecutable reports whether path is an existing runnable file.
// What counts as runnable is platform-specific; see isExecutable.
func (OSProbe) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return isExecutable(path, info)
}
