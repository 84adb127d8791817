// SPDX-License-Identifier: MPL-2.0

package main

import cmd "subdue/cmd/subdue"

func main() {
	cmd.Execute()
}
