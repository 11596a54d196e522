// Package report renders analysis results as human-readable text.
package report

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-scanner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of skills listed inside a box
	maxItemsToShow = 5
	// barWidth is the width of the score bar in summaries
	barWidth = 20
)

// Printer writes reports to an io.Writer.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintReport writes the full scanner report for one resume.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	fmt.Fprint(p.out, "\n===== ATS Resume Scanner Report =====\n\n")
	fmt.Fprintf(p.out, "Match Score: %d%%\n\n", result.MatchScore)
	fmt.Fprintf(p.out, "Matched Skills: %s\n", strings.Join(result.MatchedSkills, ", "))
	fmt.Fprintf(p.out, "Missing Skills: %s\n", strings.Join(result.MissingSkills, ", "))
	fmt.Fprintf(p.out, "Weak Skills (appear only once): %s\n", strings.Join(result.WeakSkills, ", "))
	fmt.Fprintf(p.out, "\nExperience Section:\n%s\n", result.Experience)
	fmt.Fprintf(p.out, "\nEducation Section:\n%s\n", result.Education)
	fmt.Fprintf(p.out, "\nCertifications Section:\n%s\n", result.Certifications)
	fmt.Fprint(p.out, "\nRecommendations:\n")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(p.out, "- %s\n", rec)
	}
}

// PrintScan writes the report for one resume of a multi-resume scan, headed by its source.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScan(scan types.ResumeScan) {
	fmt.Fprintf(p.out, "\nResume: %s\n", scan.Source)
	p.PrintReport(scan.Result)
}

// PrintSummary outputs a boxed overview of one result: score bar and skill counts.
func (p *Printer) PrintSummary(source string, result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Source:   " + fitSource(source, boxWidth-4-len("Source:   ")) + "\n")
	sb.WriteString(fmt.Sprintf("Score:    %s %3d%%\n", ProgressBar(result.MatchScore, barWidth), result.MatchScore))
	sb.WriteString(fmt.Sprintf("Job:      %d skills\n", len(result.JobSkills)))
	sb.WriteString(fmt.Sprintf("Resume:   %d skills\n", len(result.ResumeSkills)))
	sb.WriteString("\n")

	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}
	writeList("Matched", result.MatchedSkills)
	writeList("Missing", result.MissingSkills)
	writeList("Weak", result.WeakSkills)

	p.printBox("MATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs scans ordered as given, one line per resume.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRanking(scans []types.ResumeScan) {
	if len(scans) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO RESUMES SCANNED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, scan := range scans {
		score := 0
		if scan.Result != nil {
			score = scan.Result.MatchScore
		}
		prefix := fmt.Sprintf("#%d %3d%% ", i+1, score)
		sb.WriteString(prefix + fitSource(scan.Source, boxWidth-4-len(prefix)) + "\n")
	}
	p.printBox("RESUME RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// ProgressBar renders score (clamped to 0-100) as a bar of width cells.
func ProgressBar(score, width int) string {
	if width <= 0 {
		return ""
	}
	score = max(0, min(score, 100))
	filled := score * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// fitSource shortens a path or URL to width runes, keeping its base name.
// Names longer than width keep their last runes.
func fitSource(source string, width int) string {
	if utf8.RuneCountInString(source) <= width {
		return source
	}
	short := ".../" + path.Base(filepath.ToSlash(source))
	if runes := []rune(short); len(runes) > width {
		short = "..." + string(runes[len(runes)-(width-3):])
	}
	return short
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}
