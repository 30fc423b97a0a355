package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/portfolio-resume/internal/ingestion"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/rendering"
	"github.com/jonathan/portfolio-resume/internal/schemas"
	"github.com/jonathan/portfolio-resume/internal/website"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request validation", &ErrValidation{Field: "body", Message: "bad"}, http.StatusBadRequest},
		{"field validation", validator.ValidationErrors{}, http.StatusBadRequest},
		{"unsupported file", fmt.Errorf("upload: %w", ingestion.ErrUnsupportedFile), http.StatusBadRequest},
		{"too large", ingestion.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"site missing", &website.NotFoundError{ID: "x"}, http.StatusNotFound},
		{"no editor", &ErrUnavailable{Feature: "component editing"}, http.StatusServiceUnavailable},
		{"unreadable pdf", &ingestion.PDFError{Message: "bad"}, http.StatusUnprocessableEntity},
		{"schema invalid", &pipeline.StageError{Stage: pipeline.StageParse, Reason: pipeline.ReasonSchemaInvalid, Err: &schemas.ValidationError{}}, http.StatusUnprocessableEntity},
		{"completion failed", &pipeline.StageError{Stage: pipeline.StageParse, Reason: pipeline.ReasonCompletionFailed, Err: errors.New("503")}, http.StatusBadGateway},
		{"edit failed", &website.EditError{Message: "empty"}, http.StatusBadGateway},
		{"render failed", &rendering.RenderError{Message: "all backends failed"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: url - required", (&ErrValidation{Field: "url", Message: "required"}).Error())
	assert.Contains(t, (&ErrUnavailable{Feature: "component editing"}).Error(), "component editing is not available")
}
