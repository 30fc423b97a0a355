package schemas

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/prompts"
	"github.com/jonathan/portfolio-resume/internal/types"
)

// APICallError represents a failed call to the completion service.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// Parser maps free resume text onto a validated CandidateRecord using the
// completion service in JSON mode.
type Parser struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewParser returns a Parser on the standard model tier.
func NewParser(client llm.Client) *Parser {
	return &Parser{client: client, tier: llm.TierStandard}
}

// Parse returns a complete record or an error; it never returns a partially
// filled record. Service failures are *APICallError, and malformed JSON,
// missing fields and wrong types are *ValidationError.
func (p *Parser) Parse(ctx context.Context, text string) (*types.CandidateRecord, error) {
	if p.client == nil {
		return nil, &APICallError{Message: "no completion client configured"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Errors: []FieldError{{Field: "(input)", Message: "resume text is empty"}}}
	}

	schema, err := CandidateSchemaJSON()
	if err != nil {
		return nil, err
	}
	system, err := prompts.Render(prompts.PortfolioFile, "parse-system", map[string]string{"Schema": schema})
	if err != nil {
		return nil, &APICallError{Message: "failed to load prompt", Cause: err}
	}
	user, err := prompts.Render(prompts.PortfolioFile, "parse-user", map[string]string{"Text": text})
	if err != nil {
		return nil, &APICallError{Message: "failed to load prompt", Cause: err}
	}

	log := logging.FromContext(ctx)
	log.Debug("parsing resume text", "chars", len(text), "model", p.client.GetModel(p.tier))

	raw, err := p.client.GenerateJSON(ctx, llm.Request{System: system, Prompt: user, Tier: p.tier, Temperature: 0})
	if err != nil {
		return nil, &APICallError{Message: "failed to generate JSON from LLM", Cause: err}
	}
	raw = llm.CleanJSONBlock(raw)

	record, err := DecodeCandidate(raw)
	if err != nil {
		log.Warn("completion output failed schema validation", "error", err)
		return nil, err
	}
	return record, nil
}

// DecodeCandidate validates raw against the schema, decodes it, and checks
// struct constraints.
func DecodeCandidate(raw string) (*types.CandidateRecord, error) {
	if err := ValidateCandidateJSON(raw); err != nil {
		return nil, err
	}
	var record types.CandidateRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	record.Normalize()
	if err := record.Validate(); err != nil {
		return nil, fromValidator(err)
	}
	return &record, nil
}
