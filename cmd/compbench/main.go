package main

import (
	"os"

	"github.com/delaneyj/compbench/cmd/compbench/command"
)

func main() {
	if err := command.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
