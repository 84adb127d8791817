// SPDX-License-Identifier: MPL-2.0

//go:build windows

package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// executableExtensions are the file extensions Windows treats as runnable.
var executableExtensions = map[string]bool{
	".exe": true,
	".bat": true,
	".cmd": true,
	".com": true,
	".ps1": true,
}

// isExecutable falls back to extension matching since Windows has no
// executable permission bit.
func isExecutable(path string, _ os.FileInfo) bool {
	return executableExtensions[strings.ToLower(filepath.Ext(path))]
}
