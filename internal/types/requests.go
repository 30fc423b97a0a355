package types

import (
	"github.com/go-playground/validator/v10"
)

// ConvertPortfolioRequest asks the service to turn a portfolio URL into resume data.
type ConvertPortfolioRequest struct {
	PortfolioURL string `json:"portfolioUrl" validate:"required,url"`
	Template     string `json:"template,omitempty"`
}

// GenerateWebsiteRequest asks for a static website bundle built from resume data.
type GenerateWebsiteRequest struct {
	Data  *EnrichedResumeData `json:"data" validate:"required"`
	Style string              `json:"style,omitempty"`
}

// ModifyComponentRequest asks the component editor to rewrite one HTML fragment.
type ModifyComponentRequest struct {
	ComponentHTML string `json:"component_html" validate:"required"`
	Instructions  string `json:"instructions" validate:"required"`
	ComponentType string `json:"component_type" validate:"required"`
}

// GenerateResumePDFRequest asks for a PDF rendering of resume data.
type GenerateResumePDFRequest struct {
	ResumeData *EnrichedResumeData `json:"resumeData" validate:"required"`
	Template   string              `json:"template,omitempty"`
}

// Validate validates the ConvertPortfolioRequest using the validator.
func (r *ConvertPortfolioRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateWebsiteRequest using the validator.
func (r *GenerateWebsiteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ModifyComponentRequest using the validator.
func (r *ModifyComponentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateResumePDFRequest using the validator.
func (r *GenerateResumePDFRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
