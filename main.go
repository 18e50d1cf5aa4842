// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/getdriverfiles/getdriverfiles/cmd/getdriverfiles"

func main() {
	cmd.Execute()
}
