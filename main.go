package main

import (
	"os"

	"github.com/tooldock/tooldock/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
