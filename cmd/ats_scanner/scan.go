package main

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-scanner/internal/analysis"
	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/export"
	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/report"
	"github.com/jonathan/ats-scanner/internal/schemas"
	"github.com/jonathan/ats-scanner/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [resume...]",
	Short: "Score one or more resumes against a job description",
	Long: `Score resumes against a job description and print the ATS report.

Resumes may be PDF, DOCX or plain text files, http(s) URLs or s3://bucket/key
references. The job description is a text file (--job) or a job posting URL
(--job-url). With several resumes they are ranked by match score.`,
	Args: cobra.ArbitraryArgs,
	RunE: runScan,
}

var (
	scanResumes     []string
	scanJob         string
	scanJobURL      string
	scanConfigFile  string
	scanVocabulary  string
	scanFormat      string
	scanOut         string
	scanXLSX        string
	scanConcurrency int
	scanUseBrowser  bool
	scanVerbose     bool
)

func init() {
	scanCmd.Flags().StringArrayVarP(&scanResumes, "resume", "r", nil, "Resume path, URL or s3:// reference (repeatable)")
	scanCmd.Flags().StringVarP(&scanJob, "job", "j", "", "Path to job description text file")
	scanCmd.Flags().StringVarP(&scanJobURL, "job-url", "u", "", "URL to fetch job posting from")
	scanCmd.Flags().StringVarP(&scanConfigFile, "config", "c", "", "Path to JSON or YAML config file")
	scanCmd.Flags().StringVar(&scanVocabulary, "vocabulary", "", "Skill vocabulary file (one term per line or a JSON array)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Report format: text or json (default text)")
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "Write the report to this file instead of stdout")
	scanCmd.Flags().StringVar(&scanXLSX, "xlsx", "", "Also export results to this Excel workbook")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 0, fmt.Sprintf("Resumes analyzed in parallel (default %d)", config.DefaultConcurrency))
	scanCmd.Flags().BoolVar(&scanUseBrowser, "use-browser", false, "Render job pages with headless Chrome when static HTML is too short")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scanCmd)
}

// scanConfig merges the config file, environment and flags. Flags win.
func scanConfig(args []string) (config.Config, error) {
	fileCfg, err := loadFileConfig(scanConfigFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := config.Config{
		Resumes:        append(append([]string{}, scanResumes...), args...),
		Job:            scanJob,
		JobURL:         scanJobURL,
		VocabularyFile: scanVocabulary,
		Format:         scanFormat,
		Out:            scanOut,
		XLSX:           scanXLSX,
		Concurrency:    scanConcurrency,
		UseBrowser:     scanUseBrowser || fileCfg.UseBrowser,
		Verbose:        scanVerbose || fileCfg.Verbose,
	}
	// The job source is one setting; a flag for either form replaces both.
	if flags.Job != "" || flags.JobURL != "" {
		fileCfg.Job, fileCfg.JobURL = "", ""
	}
	cfg := flags.MergeWithDefaults(fileCfg.MergeWithDefaults(config.Defaults()))

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if len(cfg.Resumes) == 0 {
		return config.Config{}, fmt.Errorf("at least one resume is required (--resume or positional argument)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return config.Config{}, fmt.Errorf("either --job or --job-url must be provided")
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := scanConfig(args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	vocab, err := loadVocabulary(cfg.VocabularyFile, cfg.Verbose)
	if err != nil {
		return err
	}

	opts := ingestion.LoadOptions{UseBrowser: cfg.UseBrowser, Verbose: cfg.Verbose}
	if slices.ContainsFunc(cfg.Resumes, ingestion.IsS3URI) {
		client, err := ingestion.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		opts.S3 = client
	}

	jobRef := cfg.Job
	if jobRef == "" {
		jobRef = cfg.JobURL
	}
	job, err := ingestion.Load(ctx, jobRef, opts)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	scans, err := scanResumesConcurrently(ctx, analysis.New(vocab), job.Text, cfg.Resumes, cfg.Concurrency, opts)
	if err != nil {
		return err
	}

	scanReport := types.ScanReport{JobSource: jobRef, Scans: scans}
	if cfg.Out == "" {
		if err := writeReport(cmd.OutOrStdout(), cfg, scanReport); err != nil {
			return err
		}
	} else if err := writeReportFile(cfg.Out, cfg, scanReport); err != nil {
		return err
	}

	if cfg.XLSX != "" {
		path, err := export.ToExcel(scans, jobRef, cfg.XLSX)
		if err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d result(s) to %s\n", len(scans), path)
	}
	if cfg.Out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", cfg.Out)
	}
	return nil
}

// scanResumesConcurrently loads and analyzes every resume with at most limit in
// flight. Results are ranked by score, highest first; ties keep input order.
func scanResumesConcurrently(
	ctx context.Context,
	analyzer *analysis.Analyzer,
	jobText string,
	refs []string,
	limit int,
	opts ingestion.LoadOptions,
) ([]types.ResumeScan, error) {
	scans := make([]types.ResumeScan, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, ref := range refs {
		g.Go(func() error {
			doc, err := ingestion.Load(ctx, ref, opts)
			if err != nil {
				return fmt.Errorf("failed to load resume %s: %w", ref, err)
			}
			scans[i] = types.ResumeScan{
				Source: ref,
				Hash:   doc.Metadata.Hash,
				Result: analyzer.Analyze(doc.Text, jobText),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(scans, func(a, b types.ResumeScan) int {
		return cmp.Compare(b.Result.MatchScore, a.Result.MatchScore)
	})
	return scans, nil
}

// writeReport renders scanReport in the configured format.
func writeReport(out io.Writer, cfg config.Config, scanReport types.ScanReport) error {
	if cfg.Format == config.FormatJSON {
		return writeJSONReport(out, scanReport)
	}
	return writeTextReport(out, scanReport.Scans, cfg.Verbose)
}

// writeReportFile writes the report to path. The file is only reported as written
// once it has been closed without error.
func writeReportFile(path string, cfg config.Config, scanReport types.ScanReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := writeReport(f, cfg, scanReport); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}

// stickyWriter remembers the first write error so printers that ignore
// errors can still be checked once they are done.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.err = err
	return n, err
}

// writeTextReport prints the single-resume report, or every report followed by a ranking.
func writeTextReport(w io.Writer, scans []types.ResumeScan, verbose bool) error {
	out := &stickyWriter{w: w}
	printer := report.NewPrinter(out)
	if len(scans) == 1 {
		printer.PrintReport(scans[0].Result)
	} else {
		for _, scan := range scans {
			printer.PrintScan(scan)
		}
		fmt.Fprintln(out)
		printer.PrintRanking(scans)
	}
	if verbose {
		for _, scan := range scans {
			printer.PrintSummary(scan.Source, scan.Result)
		}
	}
	if out.err != nil {
		return fmt.Errorf("failed to write report: %w", out.err)
	}
	return nil
}

// writeJSONReport validates the report against its schema before writing it.
func writeJSONReport(out io.Writer, scanReport types.ScanReport) error {
	data, err := json.MarshalIndent(scanReport, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := schemas.ValidateReport(data); err != nil {
		return fmt.Errorf("report failed schema validation: %w", err)
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
