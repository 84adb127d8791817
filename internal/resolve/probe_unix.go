// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package resolve

import "os"

// isExecutable checks the executable permission bits.
func isExecutable(_ string, info os.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
