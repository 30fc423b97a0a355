package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion APIs
// (OpenAI itself, Groq, or any endpoint set through Config.BaseURL).
type OpenAIClient struct {
	config *Config
	apiKey string
	models map[string]llms.Model
}

// NewOpenAIClient creates a client for an OpenAI-compatible provider
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}

	c := &OpenAIClient{
		config: config,
		apiKey: apiKey,
		models: make(map[string]llms.Model),
	}
	// Build each tier's model up front so the client is read-only afterwards.
	for _, name := range config.Models {
		if _, ok := c.models[name]; ok {
			continue
		}
		m, err := c.newModel(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", config.Provider, err)
		}
		c.models[name] = m
	}
	return c, nil
}

func (c *OpenAIClient) newModel(name string) (llms.Model, error) {
	baseURL := c.config.BaseURL
	if baseURL == "" && c.config.Provider == ProviderGroq {
		baseURL = GroqBaseURL
	}
	opts := []openai.Option{
		openai.WithModel(name),
		openai.WithToken(c.apiKey),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	return openai.New(opts...)
}

func (c *OpenAIClient) generate(ctx context.Context, req Request, jsonMode bool) (string, error) {
	name := c.config.GetModel(req.Tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}
	model, ok := c.models[name]
	if !ok {
		return "", fmt.Errorf("model %s not initialized", name)
	}

	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	options := []llms.CallOption{llms.WithTemperature(float64(req.Temperature))}
	if jsonMode {
		options = append(options, llms.WithJSONMode())
	}

	resp, err := model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", fmt.Errorf("no content in response")
	}
	return text, nil
}

// GenerateContent generates text content for the request
func (c *OpenAIClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	return c.generate(ctx, req, false)
}

// GenerateJSON generates a JSON object for the request
func (c *OpenAIClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	text, err := c.generate(ctx, req, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; HTTP connections are pooled by the transport.
func (c *OpenAIClient) Close() error {
	return nil
}
