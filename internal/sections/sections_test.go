package sections

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_NoMatch(t *testing.T) {
	text := "John Doe\nSoftware Engineer\nSkills: Go, Python"
	assert.Equal(t, "", Extract(text, Keywords(Certifications)))
	assert.Equal(t, "", Extract("", Keywords(Experience)))
	assert.Equal(t, "", Extract(text, nil))
	assert.Equal(t, "", Extract(text, []string{""}))
}

func TestExtract_HeadingIsFirstLine(t *testing.T) {
	text := "Jane Doe\nWORK EXPERIENCE\nAcme Corp - Engineer\n2019-2023"
	result := Extract(text, Keywords(Experience))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "WORK EXPERIENCE", lines[0])
	assert.Equal(t, "WORK EXPERIENCE\nAcme Corp - Engineer\n2019-2023", result)
}

func TestExtract_WindowOfTenLines(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Education\n")
	for i := 1; i <= 20; i++ {
		sb.WriteString(fmt.Sprintf("line %d\n", i))
	}

	result := Extract(sb.String(), Keywords(Education))
	lines := strings.Split(result, "\n")

	assert.Len(t, lines, WindowSize)
	assert.Equal(t, "Education", lines[0])
	assert.Equal(t, "line 9", lines[WindowSize-1])
}

func TestExtract_ShortWindowAtEndOfText(t *testing.T) {
	text := "Summary\nCertifications\nAWS Certified Developer\n"
	assert.Equal(t, "Certifications\nAWS Certified Developer", Extract(text, Keywords(Certifications)))
}

func TestExtract_SubstringNotWholeWord(t *testing.T) {
	// "degree" matches inside "degrees" because heading keywords are plain substrings.
	text := "Intro\nDegrees earned\nBSc"
	assert.Equal(t, "Degrees earned\nBSc", Extract(text, Keywords(Education)))
}

func TestExtract_OnlyFirstMatchCounts(t *testing.T) {
	text := "Employment\nFirst job\nExperience\nSecond job"
	result := Extract(text, Keywords(Experience))
	assert.True(t, strings.HasPrefix(result, "Employment\n"))
	assert.Contains(t, result, "Experience")
}

func TestExtract_KeywordOrderDoesNotChangeResult(t *testing.T) {
	text := "Profile\nWork History\nEmployment details\nExperience"
	forward := Extract(text, []string{"experience", "employment", "work history"})
	backward := Extract(text, []string{"work history", "employment", "experience"})
	assert.Equal(t, forward, backward)
	assert.True(t, strings.HasPrefix(forward, "Work History"))
}

func TestExtract_CRLFInput(t *testing.T) {
	text := "Name\r\nEducation\r\nBS Computer Science\r\n"
	assert.Equal(t, "Education\nBS Computer Science", ExtractKind(text, Education))
}

func TestExtract_UnicodeLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "form feed", text: "Summary\fExperience\nAcme", want: "Experience\nAcme"},
		{name: "vertical tab", text: "Summary\vExperience\vAcme", want: "Experience\nAcme"},
		{name: "next line", text: "Summary\u0085Experience\u0085Acme", want: "Experience\nAcme"},
		{name: "line separator", text: "Summary\u2028Experience\u2028Acme", want: "Experience\nAcme"},
		{name: "paragraph separator", text: "Summary\u2029Experience\u2029Acme\u2029", want: "Experience\nAcme"},
		{name: "record separator", text: "Summary\x1eExperience\x1dAcme\x1c", want: "Experience\nAcme"},
		{name: "lone CR", text: "Summary\rExperience\rAcme\r", want: "Experience\nAcme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKind(tt.text, Experience))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\r\r"))
	assert.Equal(t, []string{"café", "naïve"}, splitLines("café\u2028naïve"))
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Experience\nPython developer\nEducation\nBS Computer Science"
	assert.Equal(t, ExtractKind(text, Experience), ExtractKind(text, Experience))
	assert.Equal(t, text, ExtractKind(text, Experience))
	assert.Equal(t, "Education\nBS Computer Science", ExtractKind(text, Education))
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"experience", "employment", "work history"}, Keywords(Experience))
	assert.Equal(t, []string{"education", "degree"}, Keywords(Education))
	assert.Equal(t, []string{"certification", "certifications"}, Keywords(Certifications))
	assert.Nil(t, Keywords(Kind("hobbies")))

	kws := Keywords(Experience)
	kws[0] = "mutated"
	assert.Equal(t, "experience", Keywords(Experience)[0])
}
