package main

import (
	"fmt"
	"os"

	"github.com/keywarden/keywarden/cmd/keywarden"
	"github.com/keywarden/keywarden/pkg/output"
)

func main() {
	rootCmd := keywarden.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, output.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
