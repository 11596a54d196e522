package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scanner/internal/types"
)

var (
	vocabularyFile string
	vocabularyJSON bool
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "List the skill terms the scanner matches",
	RunE:  runVocabulary,
}

func init() {
	vocabularyCmd.Flags().StringVar(&vocabularyFile, "file", "", "Vocabulary file to list instead of the built-in table")
	vocabularyCmd.Flags().BoolVar(&vocabularyJSON, "json", false, "Print as JSON")
	rootCmd.AddCommand(vocabularyCmd)
}

func runVocabulary(cmd *cobra.Command, _ []string) error {
	vocab, err := loadVocabulary(vocabularyFile, false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if vocabularyJSON {
		data, err := json.MarshalIndent(types.VocabularyResponse{Count: vocab.Len(), Terms: vocab.Terms()}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal vocabulary: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	for _, term := range vocab.Terms() {
		fmt.Fprintln(out, term)
	}
	return nil
}
