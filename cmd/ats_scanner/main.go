// Package main provides the ats_scanner command line tool and web server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ats_scanner",
	Short:         "ATS Resume Scanner",
	Long:          "ATS Resume Scanner compares resumes against a job description by skill keyword overlap and reports the match score, missing and weak skills, resume sections and recommendations.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
