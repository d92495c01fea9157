package main

import (
	"os"

	"github.com/cueline/cueline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
