package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scanner/internal/analysis"
	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/server"
)

var (
	servePort       int
	serveConfigFile string
	serveVocabulary string
	serveMaxUpload  int64
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start an HTTP server with a browser upload form and JSON endpoints for scoring resumes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, fmt.Sprintf("Port to listen on (default %d)", config.DefaultPort))
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON or YAML config file")
	serveCmd.Flags().StringVar(&serveVocabulary, "vocabulary", "", "Skill vocabulary file (one term per line or a JSON array)")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload-bytes", server.DefaultMaxUploadBytes, "Largest accepted multipart upload")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log analysis details")
	rootCmd.AddCommand(serveCmd)
}

// serveConfig merges the config file, environment and flags. Flags win.
func serveConfig() (config.Config, error) {
	fileCfg, err := loadFileConfig(serveConfigFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := config.Config{
		Port:           servePort,
		VocabularyFile: serveVocabulary,
		Verbose:        serveVerbose || fileCfg.Verbose,
	}
	cfg := flags.MergeWithDefaults(fileCfg.MergeWithDefaults(config.Defaults()))
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := serveConfig()
	if err != nil {
		return err
	}

	vocab, err := loadVocabulary(cfg.VocabularyFile, cfg.Verbose)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Analyzer:       analysis.New(vocab),
		MaxUploadBytes: serveMaxUpload,
		Verbose:        cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
