package main

import (
	"os"

	"github.com/gigalog/gigalog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
