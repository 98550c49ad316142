// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/sprockets/sprockets/cmd/sprockets"

func main() {
	cmd.Execute()
}
