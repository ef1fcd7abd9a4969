package main

import (
	"os"

	"github.com/rustyeddy/stockbot/cmd/stockbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
