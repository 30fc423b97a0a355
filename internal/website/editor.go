package website

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/prompts"
)

// EditTemperature is the sampling temperature for component rewrites.
const EditTemperature float32 = 0.4

// ComponentPolicy is the UGC policy extended with the attributes the site
// styles and script select on.
func ComponentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id").Globally()
	p.AllowDataAttributes()
	return p
}

// ComponentEditor rewrites single HTML components through the completion
// service.
type ComponentEditor struct {
	client llm.Client
	tier   llm.ModelTier
	policy *bluemonday.Policy
}

// NewComponentEditor returns an editor using the standard model tier.
func NewComponentEditor(client llm.Client) *ComponentEditor {
	return &ComponentEditor{client: client, tier: llm.TierStandard, policy: ComponentPolicy()}
}

// Modify applies instructions to componentHTML. The answer is stripped of
// code fences and sanitized before it is returned.
func (e *ComponentEditor) Modify(ctx context.Context, componentHTML, instructions, componentType string) (string, error) {
	if e.client == nil {
		return "", &EditError{Message: "no completion client configured"}
	}
	if strings.TrimSpace(componentHTML) == "" || strings.TrimSpace(instructions) == "" || strings.TrimSpace(componentType) == "" {
		return "", &EditError{Message: "component_html, instructions and component_type are required"}
	}

	prompt, err := prompts.Render(prompts.WebsiteFile, "modify-component", map[string]string{
		"ComponentHTML": componentHTML,
		"ComponentType": componentType,
		"Instructions":  instructions,
	})
	if err != nil {
		return "", &EditError{Message: "failed to load prompt", Cause: err}
	}

	logging.FromContext(ctx).Debug("modifying component", "type", componentType, "bytes", len(componentHTML))
	text, err := e.client.GenerateContent(ctx, llm.Request{Prompt: prompt, Tier: e.tier, Temperature: EditTemperature})
	if err != nil {
		return "", &EditError{Message: "completion call failed", Cause: err}
	}

	out := strings.TrimSpace(e.policy.Sanitize(llm.CleanCodeBlock(text)))
	if out == "" {
		return "", &EditError{Message: "completion returned no usable HTML"}
	}
	return out, nil
}
