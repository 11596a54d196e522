package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/ats-scanner/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		MatchScore:     66,
		MatchedSkills:  []string{"python", "docker"},
		MissingSkills:  []string{"aws"},
		WeakSkills:     []string{"docker"},
		JobSkills:      []string{"python", "aws", "docker"},
		ResumeSkills:   []string{"python", "docker"},
		Experience:     "Experience\nPython developer",
		Education:      "Education\nBSc Computer Science",
		Certifications: "",
		Recommendations: []string{
			"Consider adding or emphasizing these skills: aws.",
			"Highlight these skills more: docker.",
			"Add relevant certifications if you have them.",
		},
	}
}

func TestPrintReport_Layout(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(sampleResult())

	want := "\n===== ATS Resume Scanner Report =====\n\n" +
		"Match Score: 66%\n\n" +
		"Matched Skills: python, docker\n" +
		"Missing Skills: aws\n" +
		"Weak Skills (appear only once): docker\n" +
		"\nExperience Section:\nExperience\nPython developer\n" +
		"\nEducation Section:\nEducation\nBSc Computer Science\n" +
		"\nCertifications Section:\n\n" +
		"\nRecommendations:\n" +
		"- Consider adding or emphasizing these skills: aws.\n" +
		"- Highlight these skills more: docker.\n" +
		"- Add relevant certifications if you have them.\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintReport_EmptyLists(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(&types.AnalysisResult{})

	output := buf.String()
	assert.Contains(t, output, "Matched Skills: \n")
	assert.Contains(t, output, "Match Score: 0%")
	assert.True(t, strings.HasSuffix(output, "\nRecommendations:\n"))
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScan(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScan(types.ResumeScan{Source: "alice.pdf", Result: sampleResult()})

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "\nResume: alice.pdf\n"))
	assert.Contains(t, output, "===== ATS Resume Scanner Report =====")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary("alice.pdf", sampleResult())
	output := buf.String()

	assert.Contains(t, output, "MATCH SUMMARY")
	assert.Contains(t, output, "alice.pdf")
	assert.Contains(t, output, " 66%")
	assert.Contains(t, output, "Matched (2):")
	assert.Contains(t, output, "Missing (1):")
	assert.Contains(t, output, "• aws")
}

func TestPrintSummary_TruncatesLongLists(t *testing.T) {
	result := sampleResult()
	result.MissingSkills = []string{"a", "b", "c", "d", "e", "f", "g"}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary("x.txt", result)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRanking([]types.ResumeScan{
		{Source: "bob.pdf", Result: &types.AnalysisResult{MatchScore: 90}},
		{Source: "alice.pdf", Result: &types.AnalysisResult{MatchScore: 40}},
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME RANKING")
	assert.Contains(t, output, "#1  90% bob.pdf")
	assert.Contains(t, output, "#2  40% alice.pdf")
	assert.Less(t, strings.Index(output, "bob.pdf"), strings.Index(output, "alice.pdf"))
}

func TestPrintRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanking(nil)
	assert.Contains(t, buf.String(), "NO RESUMES SCANNED")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		score, width int
		want         string
	}{
		{0, 4, "[░░░░]"},
		{50, 4, "[██░░]"},
		{100, 4, "[████]"},
		{150, 4, "[████]"},
		{-10, 4, "[░░░░]"},
		{50, 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.score, tt.width), "score=%d width=%d", tt.score, tt.width)
	}
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(strings.Repeat("very-long-resume-name-", 5)+".pdf", sampleResult())
	output := buf.String()

	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestPrintRanking_LongSourcesKeepBaseName(t *testing.T) {
	dir := "/tmp/TestScanCommand_TextRanking1234567890/001/" + strings.Repeat("nested/", 4)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanking([]types.ResumeScan{
		{Source: dir + "john.txt", Result: &types.AnalysisResult{MatchScore: 100}},
		{Source: dir + "jane.txt", Result: &types.AnalysisResult{MatchScore: 66}},
	})
	output := buf.String()

	assert.Contains(t, output, "#1 100% .../john.txt")
	assert.Contains(t, output, "#2  66% .../jane.txt")
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestPrintSummary_LongSourceKeepsBaseName(t *testing.T) {
	source := "/tmp/TestScanCommand_Verbose998168719/001/jane.txt"

	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(source, sampleResult())
	assert.Contains(t, buf.String(), "Source:   .../jane.txt")
}

func TestFitSource(t *testing.T) {
	tests := []struct {
		source string
		width  int
		want   string
	}{
		{"alice.pdf", 20, "alice.pdf"},
		{"/very/long/directory/alice.pdf", 20, ".../alice.pdf"},
		{"https://jobs.example.com/postings/123/resume.docx", 20, ".../resume.docx"},
		{"/a/" + strings.Repeat("x", 30) + ".txt", 12, "...xxxxx.txt"},
	}
	for _, tt := range tests {
		got := fitSource(tt.source, tt.width)
		assert.Equal(t, tt.want, got, "source=%q width=%d", tt.source, tt.width)
		assert.LessOrEqual(t, len([]rune(got)), tt.width)
	}
}
