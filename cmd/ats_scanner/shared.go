package main

import (
	"fmt"
	"log"

	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/skills"
)

// loadFileConfig reads the --config file when given and applies ATS_* overrides.
func loadFileConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadVocabulary returns the vocabulary at path, or the built-in table when path is empty.
func loadVocabulary(path string, verbose bool) (*skills.Vocabulary, error) {
	if path == "" {
		return skills.Default(), nil
	}
	vocab, err := skills.LoadVocabulary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	if verbose {
		log.Printf("[VERBOSE] Loaded %d vocabulary terms from %s", vocab.Len(), path)
	}
	return vocab, nil
}
