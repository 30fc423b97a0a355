package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/portfolio-resume/internal/ingestion"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/schemas"
	"github.com/jonathan/portfolio-resume/internal/website"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature whose backing service is not configured.
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available: no completion provider configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr      *ErrValidation
		fieldErrs   validator.ValidationErrors
		unavailable *ErrUnavailable
		notFound    *website.NotFoundError
		pdfErr      *ingestion.PDFError
		schemaErr   *schemas.ValidationError
		stageErr    *pipeline.StageError
		apiErr      *schemas.APICallError
		editErr     *website.EditError
	)
	switch {
	case errors.As(err, &reqErr), errors.As(err, &fieldErrs), errors.Is(err, ingestion.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &pdfErr), errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stageErr) && stageErr.Reason == pipeline.ReasonCompletionFailed,
		errors.As(err, &apiErr), errors.As(err, &editErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
