package narrative

import (
	"context"
	"strings"

	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/prompts"
)

// Temperature is the sampling temperature for the restructuring call.
const Temperature float32 = 0.1

// Restructurer turns a narrative into a resume-style summary through the
// completion service.
type Restructurer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewRestructurer returns a Restructurer using the standard model tier.
func NewRestructurer(client llm.Client) *Restructurer {
	return &Restructurer{client: client, tier: llm.TierStandard}
}

// WithTier returns a copy of r that calls the given model tier.
func (r *Restructurer) WithTier(tier llm.ModelTier) *Restructurer {
	cp := *r
	cp.tier = tier
	return &cp
}

// Restructure sends narrative to the completion service and returns its free
// text answer. Errors are returned as *APICallError and are not retried.
func (r *Restructurer) Restructure(ctx context.Context, narrative string) (string, error) {
	if r.client == nil {
		return "", &APICallError{Message: "no completion client configured"}
	}
	if strings.TrimSpace(narrative) == "" {
		return "", &APICallError{Message: "narrative is empty"}
	}

	system, err := prompts.Get(prompts.PortfolioFile, "restructure-system")
	if err != nil {
		return "", &APICallError{Message: "failed to load prompt", Cause: err}
	}
	user, err := prompts.Render(prompts.PortfolioFile, "restructure-user", map[string]string{
		"Narrative": narrative,
	})
	if err != nil {
		return "", &APICallError{Message: "failed to load prompt", Cause: err}
	}

	req := llm.Request{System: system, Prompt: user, Tier: r.tier, Temperature: Temperature}

	logging.FromContext(ctx).Debug("restructuring narrative", "chars", len(narrative), "model", r.client.GetModel(r.tier))
	text, err := r.client.GenerateContent(ctx, req)
	if err != nil {
		return "", &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &APICallError{Message: "completion service returned no content"}
	}
	return text, nil
}
