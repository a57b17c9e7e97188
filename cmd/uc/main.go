package main

import (
	"os"

	"github.com/uclang/go-uc/cmd/uc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
