// SPDX-License-Identifier: MPL-2.0

package main

import cmd "makectl/cmd/makectl"

func main() {
	cmd.Execute()
}
