package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scanner/internal/server"
)

const (
	testJobText    = "We need python, sql and docker."
	testWeakResume = "Jane Doe\nPython developer. Python and SQL.\nExperience\nBuilt data pipelines"
	testFullResume = "John Roe\nPython, Python, SQL, SQL, Docker and Docker.\nEducation\nBSc Computer Science"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags clears flag variables left over from a previous execution.
func resetFlags() {
	scanResumes = nil
	scanJob, scanJobURL, scanConfigFile, scanVocabulary = "", "", "", ""
	scanFormat, scanOut, scanXLSX = "", "", ""
	scanConcurrency = 0
	scanUseBrowser, scanVerbose = false, false

	servePort, serveConfigFile, serveVocabulary, serveVerbose = 0, "", "", false
	serveMaxUpload = server.DefaultMaxUploadBytes

	vocabularyFile, vocabularyJSON = "", false
	validateSchemaFile = ""
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
