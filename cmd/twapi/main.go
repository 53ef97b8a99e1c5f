package main

import (
	"fmt"
	"os"

	"github.com/fivetwenty-io/twapi/cmd/twapi/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(version, commit, date)

	err := rootCmd.Execute()

	shutdownErr := commands.Shutdown()
	if shutdownErr != nil {
		fmt.Fprintln(os.Stderr, shutdownErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
