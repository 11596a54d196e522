// Package server provides the HTTP API and web page for the ATS scanner.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ats-scanner/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates an upload over the configured size limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		fieldErrs      validator.ValidationErrors
		tooLarge       *ErrPayloadTooLarge
		maxBytesErr    *http.MaxBytesError
		unsupportedErr *ingestion.UnsupportedFormatError
		extractionErr  *ingestion.ExtractionError
		sourceErr      *ingestion.SourceError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractionErr), errors.Is(err, ingestion.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &sourceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
