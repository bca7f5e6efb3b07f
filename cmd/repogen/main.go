package main

import (
	"os"

	repogencmd "github.com/repogen/repogen/pkg/cmd"
)

func main() {
	root := repogencmd.NewRootCommand(repogencmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
