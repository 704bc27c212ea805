// Package main provides the acta CLI for driving the Acta AI template test
// pipeline: title generation, experience interview, and streamed article
// generation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "acta",
	Short: "Acta AI streaming generation client",
	Long:  "acta drives the three-phase blog generation pipeline (titles, optional experience interview, streamed article) against an Acta AI backend and renders progress live.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
