package main

import (
	"fmt"

	"github.com/dojoenv/dojo-rl/cmd"
)

// main entry point to training, serving and exploration
func main() {
	// rootCommand defines a command line argument parser (some arguments and a subcommand to run)
	rootCommand := cmd.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
