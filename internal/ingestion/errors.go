package ingestion

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a document yields no text at all.
var ErrEmptyDocument = errors.New("document contains no text")

// UnsupportedFormatError indicates a document whose format cannot be read.
type UnsupportedFormatError struct {
	Source string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q: %s", e.Format, e.Source)
}

// ExtractionError indicates a document that was found but could not be turned into text.
type ExtractionError struct {
	Source  string
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text from %s: %s: %v", e.Format, e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text from %s: %s", e.Format, e.Source, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// SourceError indicates the document reference itself could not be resolved
// (missing file, bad URL, unreachable object).
type SourceError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot read %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("cannot read %s: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}
