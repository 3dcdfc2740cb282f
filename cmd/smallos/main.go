package main

import (
	"os"

	"github.com/metaphox/smallos-lang/cmd/smallos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
