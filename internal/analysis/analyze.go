// Package analysis scores a resume against a job description by skill keyword overlap.
package analysis

import (
	"strings"

	"github.com/jonathan/ats-scanner/internal/sections"
	"github.com/jonathan/ats-scanner/internal/skills"
	"github.com/jonathan/ats-scanner/internal/types"
)

// Analyzer compares resumes with job descriptions using a fixed vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	vocab *skills.Vocabulary
}

// New returns an Analyzer bound to vocab. A nil vocab selects skills.Default().
func New(vocab *skills.Vocabulary) *Analyzer {
	if vocab == nil {
		vocab = skills.Default()
	}
	return &Analyzer{vocab: vocab}
}

// Vocabulary returns the vocabulary the analyzer matches against.
func (a *Analyzer) Vocabulary() *skills.Vocabulary {
	return a.vocab
}

// Analyze compares resumeText with jobText and builds the full result record.
func (a *Analyzer) Analyze(resumeText, jobText string) *types.AnalysisResult {
	resumeSkills := skills.Extract(resumeText, a.vocab)
	experience := sections.ExtractKind(resumeText, sections.Experience)
	education := sections.ExtractKind(resumeText, sections.Education)
	certifications := sections.ExtractKind(resumeText, sections.Certifications)

	jobSkills := skills.Extract(jobText, a.vocab)
	matched := jobSkills.Intersect(resumeSkills)
	missing := jobSkills.Difference(resumeSkills)
	weak := WeakSkills(resumeText, matched)

	return &types.AnalysisResult{
		MatchScore:      Score(len(matched), len(jobSkills)),
		MatchedSkills:   matched.Strings(),
		MissingSkills:   missing.Strings(),
		WeakSkills:      weak.Strings(),
		JobSkills:       jobSkills.Strings(),
		ResumeSkills:    resumeSkills.Strings(),
		Experience:      experience,
		Education:       education,
		Certifications:  certifications,
		Recommendations: Recommendations(missing, weak, certifications),
	}
}

// Analyze runs the default-vocabulary analyzer.
func Analyze(resumeText, jobText string) *types.AnalysisResult {
	return New(nil).Analyze(resumeText, jobText)
}

// Score returns floor(100 * matched / max(total, 1)).
func Score(matched, total int) int {
	return 100 * matched / max(total, 1)
}

// WeakSkills returns the matched terms whose raw substring count in the lowercased
// resume is exactly one. The count is not word-bounded, so a term embedded in a
// longer word ("java" in "javascript") adds to it.
func WeakSkills(resumeText string, matched skills.Set) skills.Set {
	lowered := strings.ToLower(resumeText)
	weak := skills.Set{}
	for _, term := range matched {
		if strings.Count(lowered, term) == 1 {
			weak = append(weak, term)
		}
	}
	return weak
}
