// Package main provides the entry point for the education leadership prep API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "preptool",
	Short: "Education leadership prep API server",
	Long:  "Preptool serves the career-preparation API for K-12 education administrators: interview practice, resume building, career chat, and the AI/TTS proxy endpoints.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
