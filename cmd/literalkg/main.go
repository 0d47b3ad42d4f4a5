package main

import (
	"os"

	"github.com/agenthands/literalkg/internal/cli"
	"github.com/agenthands/literalkg/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}
