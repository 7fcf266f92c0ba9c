// Command smartcalc is a minimal demo shell over the SmartCalc session
// engine: a REPL for interactive use and an eval subcommand for
// one-shot/piped evaluation.
package main

import "github.com/smartcalc/smartcalc/cmd/smartcalc/cmd"

func main() {
	cmd.Execute()
}
