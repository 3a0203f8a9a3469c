package main

import (
	"os"

	"github.com/bnema/driver-partner-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
