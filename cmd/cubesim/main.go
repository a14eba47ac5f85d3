// cubesim - interactive 3x3x3 cube simulator for the terminal.
package main

import (
	"github.com/SeamusWaldron/cubesim/internal/cli"
)

func main() {
	cli.Execute()
}
