package main

import (
	"os"

	"github.com/ros-acados/nodegen/internal/cli"
	"github.com/ros-acados/nodegen/internal/logging"
)

// main is the entry point for the nodegen CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
