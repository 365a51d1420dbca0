package main

import (
	"os"

	"github.com/wonny/signalcheck/cmd/signalcheck/commands"
)

// main is the entry point for the signalcheck CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/signalcheck [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
