package types

import "github.com/go-playground/validator/v10"

// MaxTextLength caps each text field of an analysis request, in characters.
const MaxTextLength = 1 << 20

// AnalyzeRequest is the JSON body of POST /analyze.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,max=1048576"`
	JobDescription string `json:"job_description" validate:"required,max=1048576"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// VocabularyResponse is the body of GET /vocabulary.
type VocabularyResponse struct {
	Count int      `json:"count"`
	Terms []string `json:"terms"`
}

// TermLookupResponse is the body of GET /vocabulary?term=.
type TermLookupResponse struct {
	Term  string `json:"term"`
	Known bool   `json:"known"`
}
