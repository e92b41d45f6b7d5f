package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/tdx-cli/tdx/internal/cli"
)

// Version information set via ldflags
var version = "dev"

func main() {
	// Load .env file if present (ignore errors, it's optional)
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
