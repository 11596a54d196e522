package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scanner/internal/schemas"
)

var validateSchemaFile string

var validateResultCmd = &cobra.Command{
	Use:   "validate-result <file.json>",
	Short: "Validate a JSON result or scan report",
	Long: `Validate a JSON document written by "scan --format json" against the built-in
schemas. A document with a top-level "scans" array is checked as a scan report,
anything else as a single analysis result. --schema validates against a
schema file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateResult,
}

func init() {
	validateResultCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Validate against this JSON Schema file")
	rootCmd.AddCommand(validateResultCmd)
}

func runValidateResult(cmd *cobra.Command, args []string) error {
	path := args[0]

	var err error
	if validateSchemaFile != "" {
		err = schemas.ValidateJSON(validateSchemaFile, path)
	} else {
		err = schemas.ValidateFile(path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
	return nil
}
