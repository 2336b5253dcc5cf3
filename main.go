package main

import (
	"os"

	"github.com/hscprep/hscprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
