// Package types provides type definitions for structured data used throughout the ATS scanner.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisResult is the outcome of comparing one resume against one job description.
// Skill lists are in vocabulary order and are never nil.
type AnalysisResult struct {
	MatchScore      int      `json:"match_score"` // 0-100
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	WeakSkills      []string `json:"weak_skills"` // matched skills that occur once in the resume
	JobSkills       []string `json:"job_skills"`
	ResumeSkills    []string `json:"resume_skills"`
	Experience      string   `json:"experience"`
	Education       string   `json:"education"`
	Certifications  string   `json:"certifications"`
	Recommendations []string `json:"recommendations"`
}

// ResumeScan pairs an analysis result with the resume document it was computed from.
type ResumeScan struct {
	Source string          `json:"source"`         // Path, URL or s3:// reference of the resume
	Hash   string          `json:"hash,omitempty"` // SHA256 of the extracted resume text
	Result *AnalysisResult `json:"result"`
}

// ScanReport is the JSON document written by the scan command.
type ScanReport struct {
	JobSource string       `json:"job_source"`
	Scans     []ResumeScan `json:"scans"`
}
