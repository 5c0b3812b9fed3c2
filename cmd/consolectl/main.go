// consolectl - Command-line interface for the admin console record engine
package main

import (
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/console/internal/cli"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	// Missing .env is fine, the environment and defaults still apply.
	_ = godotenv.Load()

	cli.Version = Version
	cli.Execute()
}
