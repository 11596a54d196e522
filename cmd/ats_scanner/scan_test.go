package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ats-scanner/internal/analysis"
	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/types"
)

func TestScanCommand_SingleResumeText(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	stdout, _, err := executeCommand(t, "scan", "--resume", resume, "--job", job)
	require.NoError(t, err)

	assert.Contains(t, stdout, "===== ATS Resume Scanner Report =====")
	assert.Contains(t, stdout, "Match Score: 66%")
	assert.Contains(t, stdout, "Matched Skills: python, sql\n")
	assert.Contains(t, stdout, "Missing Skills: docker\n")
	assert.Contains(t, stdout, "Weak Skills (appear only once): sql\n")
	assert.Contains(t, stdout, "- "+analysis.CertificationReminder)
	assert.NotContains(t, stdout, "RESUME RANKING")
}

func TestScanCommand_MultipleResumesRanked(t *testing.T) {
	dir := t.TempDir()
	weak := writeFile(t, dir, "jane.txt", testWeakResume)
	full := writeFile(t, dir, "john.txt", testFullResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	stdout, _, err := executeCommand(t, "scan", "--job", job, "--format", "json", weak, full)
	require.NoError(t, err)

	var report types.ScanReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, job, report.JobSource)
	require.Len(t, report.Scans, 2)

	assert.Equal(t, full, report.Scans[0].Source)
	assert.Equal(t, 100, report.Scans[0].Result.MatchScore)
	assert.Equal(t, weak, report.Scans[1].Source)
	assert.Equal(t, 66, report.Scans[1].Result.MatchScore)
	for _, scan := range report.Scans {
		assert.Len(t, scan.Hash, 64)
	}
}

func TestScanCommand_TextRanking(t *testing.T) {
	dir := t.TempDir()
	weak := writeFile(t, dir, "jane.txt", testWeakResume)
	full := writeFile(t, dir, "john.txt", testFullResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	stdout, _, err := executeCommand(t, "scan", "-r", weak, "-r", full, "-j", job, "--concurrency", "1")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(stdout, "===== ATS Resume Scanner Report ====="))
	assert.Contains(t, stdout, "RESUME RANKING")
	// Long temp paths are shortened in the box, but the base name always survives.
	first := regexp.MustCompile(`#1 100% \S*john\.txt`).FindStringIndex(stdout)
	second := regexp.MustCompile(`#2  66% \S*jane\.txt`).FindStringIndex(stdout)
	require.NotNil(t, first, stdout)
	require.NotNil(t, second, stdout)
	assert.Less(t, first[0], second[0])
}

func TestScanCommand_OutputFilesAndValidate(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)
	reportPath := filepath.Join(dir, "report.json")
	workbook := filepath.Join(dir, "results")

	stdout, stderr, err := executeCommand(t, "scan", "-r", resume, "-j", job,
		"--format", "json", "--out", reportPath, "--xlsx", workbook)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Report written to "+reportPath)
	assert.Contains(t, stderr, workbook+".xlsx")

	f, err := excelize.OpenFile(workbook + ".xlsx")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Contains(t, f.GetSheetList(), "Ranked Resumes")

	stdout, _, err = executeCommand(t, "validate-result", reportPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestScanCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)
	vocab := writeFile(t, dir, "skills.txt", "# custom\nPython\nRust\n")
	cfgPath := writeFile(t, dir, "ats.yaml", "resumes:\n  - "+resume+"\njob: "+job+
		"\nvocabulary_file: "+vocab+"\nformat: json\n")

	stdout, _, err := executeCommand(t, "scan", "--config", cfgPath)
	require.NoError(t, err)

	var report types.ScanReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Scans, 1)
	assert.Equal(t, []string{"python"}, report.Scans[0].Result.JobSkills)
	assert.Equal(t, 100, report.Scans[0].Result.MatchScore)
}

func TestScanCommand_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)
	cfgPath := writeFile(t, dir, "ats.json", `{"job_url": "https://jobs.example.com/1", "format": "json"}`)

	stdout, _, err := executeCommand(t, "scan", "--config", cfgPath, "--job", job, "--format", "text", resume)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Match Score: 66%")
}

func TestScanCommand_JobURL(t *testing.T) {
	posting := `<html><body><nav>Careers home</nav>
		<div class="job-description"><h1>Backend Engineer</h1><p>` + testJobText + `</p></div>
		</body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(posting))
	}))
	defer ts.Close()

	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)

	stdout, _, err := executeCommand(t, "scan", "-r", resume, "--job-url", ts.URL+"/jobs/1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Match Score: 66%")
}

func TestScanCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "no resumes",
			args:        []string{"scan", "--job", job},
			errorString: "at least one resume is required",
		},
		{
			name:        "no job",
			args:        []string{"scan", resume},
			errorString: "either --job or --job-url must be provided",
		},
		{
			name:        "job and job-url",
			args:        []string{"scan", resume, "--job", job, "--job-url", "https://example.com/job"},
			errorString: "mutually exclusive",
		},
		{
			name:        "bad format",
			args:        []string{"scan", resume, "--job", job, "--format", "xml"},
			errorString: "config error",
		},
		{
			name:        "missing job file",
			args:        []string{"scan", resume, "--job", filepath.Join(dir, "nope.txt")},
			errorString: "job file not found",
		},
		{
			name:        "missing resume file",
			args:        []string{"scan", filepath.Join(dir, "ghost.pdf"), "--job", job},
			errorString: "failed to load resume",
		},
		{
			name:        "unsupported resume format",
			args:        []string{"scan", writeFile(t, dir, "cv.docx", "plain text"), "--job", job},
			errorString: "DOCX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestScanCommand_ConcurrencyLimit(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.txt", testJobText)
	args := []string{"scan", "--job", job, "--format", "json", "--concurrency", "2"}
	for i := 0; i < 6; i++ {
		args = append(args, writeFile(t, dir, "resume"+string(rune('a'+i))+".txt", testWeakResume))
	}

	stdout, _, err := executeCommand(t, args...)
	require.NoError(t, err)

	var report types.ScanReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Scans, 6)
	// Equal scores keep input order.
	for i, scan := range report.Scans {
		assert.Equal(t, filepath.Join(dir, "resume"+string(rune('a'+i))+".txt"), scan.Source)
	}
}

func TestScanCommand_Verbose(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	stdout, _, err := executeCommand(t, "scan", "-r", resume, "-j", job, "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MATCH SUMMARY")
	assert.Regexp(t, `Source:   \S*jane\.txt`, stdout)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReport_PropagatesWriteErrors(t *testing.T) {
	scanReport := types.ScanReport{
		JobSource: "job.txt",
		Scans: []types.ResumeScan{
			{Source: "jane.txt", Result: analysis.Analyze(testWeakResume, testJobText)},
		},
	}

	for _, format := range []string{config.FormatText, config.FormatJSON} {
		t.Run(format, func(t *testing.T) {
			err := writeReport(failingWriter{}, config.Config{Format: format}, scanReport)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk full")
		})
	}
}

func TestScanCommand_OutFileWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	_, stderr, err := executeCommand(t, "scan", "-r", resume, "-j", job, "--out", "/dev/full")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
	assert.NotContains(t, stderr, "Report written to")
}

func TestScanCommand_OutFileCreateFailure(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", testWeakResume)
	job := writeFile(t, dir, "job.txt", testJobText)

	_, stderr, err := executeCommand(t, "scan", "-r", resume, "-j", job,
		"--out", filepath.Join(dir, "missing", "report.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create report file")
	assert.NotContains(t, stderr, "Report written to")
}
