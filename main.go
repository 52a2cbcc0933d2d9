package main

import (
	"os"

	"github.com/rgoulet/dugout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
