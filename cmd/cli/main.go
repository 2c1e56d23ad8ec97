package main

import (
	"os"

	"github.com/chessctl-dev/chessctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
