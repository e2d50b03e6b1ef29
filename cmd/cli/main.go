package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lenskeep/studio/cmd/cli/commands"
)

func main() {
	// Load .env file if present so the server address can come from it
	_ = godotenv.Load()

	if err := commands.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
