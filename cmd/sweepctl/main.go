package main

import (
	"os"

	"github.com/sweepproject/sweep/cmd/sweepctl/cmd"
)

func main() {
	err := cmd.RootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
