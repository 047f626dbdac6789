package main

import (
	"forumpulse/cmd/cmd"
	"forumpulse/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
