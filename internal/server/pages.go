package server

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/ats-scanner/internal/report"
	"github.com/jonathan/ats-scanner/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"joinOrNone": func(items []string) string {
		if len(items) == 0 {
			return "None"
		}
		return strings.Join(items, ", ")
	},
	"orNotFound": func(section string) string {
		if section == "" {
			return "Not found"
		}
		return section
	},
	"bar": func(score int) string { return report.ProgressBar(score, 40) },
}).ParseFS(templateFS, "templates/index.html"))

// pageData is rendered by templates/index.html.
type pageData struct {
	Result     *types.AnalysisResult
	Error      string
	ResumeName string
	JobName    string
}

// handleIndex serves the upload form
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{})
}

// handleIndexSubmit analyzes the uploaded files and renders the result page
func (s *Server) handleIndexSubmit(w http.ResponseWriter, r *http.Request) {
	files, err := s.readUploads(w, r)
	if err != nil {
		s.renderPage(w, HTTPStatus(err), pageData{Error: err.Error()})
		return
	}

	s.renderPage(w, http.StatusOK, pageData{
		Result:     s.analyzer.Analyze(files.ResumeText, files.JobText),
		ResumeName: files.ResumeName,
		JobName:    files.JobName,
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("[server] Error rendering page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
