// Package main provides the resumeforge CLI: job intake, resume generation
// and batch processing for tracked job postings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumeforge",
	Short: "Tailored resume generation for tracked job postings",
	Long:  "Resume Forge extracts requirements from job postings, matches them against a candidate profile, and renders tailored PDF resumes styled after a reference document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
