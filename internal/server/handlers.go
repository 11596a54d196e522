package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/server/middleware"
	"github.com/jonathan/ats-scanner/internal/types"
)

// resumeExtensions are the upload types accepted for the resume field.
var resumeExtensions = []string{".pdf", ".docx", ".txt"}

// jobExtensions are the upload types accepted for the job description field.
var jobExtensions = []string{".txt"}

// maxJSONBodyBytes caps /analyze request bodies.
const maxJSONBodyBytes = 8 << 20

// uploads holds the texts extracted from a multipart submission.
type uploads struct {
	ResumeName string
	ResumeText string
	JobName    string
	JobText    string
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVocabulary lists the skill terms the analyzer matches, or with ?term=
// reports whether a single term is one of them
func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	vocab := s.analyzer.Vocabulary()
	if r.URL.Query().Has("term") {
		term := r.URL.Query().Get("term")
		if strings.TrimSpace(term) == "" {
			s.errorResponse(w, http.StatusBadRequest, "term must not be empty")
			return
		}
		s.jsonResponse(w, http.StatusOK, types.TermLookupResponse{Term: term, Known: vocab.Has(term)})
		return
	}
	s.jsonResponse(w, http.StatusOK, types.VocabularyResponse{
		Count: vocab.Len(),
		Terms: vocab.Terms(),
	})
}

// handleAnalyze scores resume text against job description text
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), "Validation failed: "+err.Error())
		return
	}

	result := s.analyzer.Analyze(req.ResumeText, req.JobDescription)
	if s.verbose {
		log.Printf("[VERBOSE] request %s: score %d%%", middleware.GetRequestID(r.Context()), result.MatchScore)
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeUpload scores an uploaded resume file against an uploaded job description file
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	files, err := s.readUploads(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.analyzer.Analyze(files.ResumeText, files.JobText))
}

// readUploads parses the multipart form and extracts the resume and job texts.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) (*uploads, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &ErrPayloadTooLarge{Limit: s.maxUploadBytes}
		}
		return nil, &ErrValidation{Field: "form", Message: "expected multipart/form-data: " + err.Error()}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := &uploads{}
	var err error
	if files.ResumeName, files.ResumeText, err = readUpload(r, "resume", resumeExtensions...); err != nil {
		return nil, err
	}
	if files.JobName, files.JobText, err = readUpload(r, "job", jobExtensions...); err != nil {
		return nil, err
	}
	return files, nil
}

// readUpload extracts the text of the named form file.
func readUpload(r *http.Request, field string, exts ...string) (name, text string, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", &ErrValidation{Field: field, Message: "file is required"}
	}
	defer func() { _ = file.Close() }()

	if err := ingestion.RequireExtension(header.Filename, exts...); err != nil {
		return "", "", err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload %s: %w", field, err)
	}
	text, err = ingestion.ExtractFromBytes(header.Filename, data)
	if err != nil {
		return "", "", err
	}
	return header.Filename, text, nil
}
