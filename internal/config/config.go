// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-resume/internal/fetch"
	"github.com/jonathan/portfolio-resume/internal/ingestion"
	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/logging"
)

// Config represents the configuration that can be loaded from a JSON or YAML
// file. All fields are optional; missing values use defaults or come from the
// environment.
type Config struct {
	// Server
	Port                  int    `json:"port,omitempty" yaml:"port,omitempty"`
	UploadDir             string `json:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`
	SitesDir              string `json:"sites_dir,omitempty" yaml:"sites_dir,omitempty"`
	MaxUploadMB           int    `json:"max_upload_mb,omitempty" yaml:"max_upload_mb,omitempty"`
	ConvertTimeoutSeconds int    `json:"convert_timeout_seconds,omitempty" yaml:"convert_timeout_seconds,omitempty"`

	// Completion service
	Provider string            `json:"provider,omitempty" yaml:"provider,omitempty"` // gemini, groq or openai
	APIKey   string            `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL  string            `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Models   map[string]string `json:"models,omitempty" yaml:"models,omitempty"` // tier -> model name

	// Fetching
	FetchTimeoutSeconds int  `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty"`
	UseBrowser          bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Use headless browser for SPA sites
	InsecureRetry       bool `json:"insecure_retry,omitempty" yaml:"insecure_retry,omitempty"`
	DisablePlaceholder  bool `json:"disable_placeholder,omitempty" yaml:"disable_placeholder,omitempty"`

	// Extraction
	MaxPDFPages  int `json:"max_pdf_pages,omitempty" yaml:"max_pdf_pages,omitempty"`
	ContextChars int `json:"context_chars,omitempty" yaml:"context_chars,omitempty"`

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogJSON  bool   `json:"log_json,omitempty" yaml:"log_json,omitempty"`
	Verbose  bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                  5000,
		UploadDir:             "uploads",
		SitesDir:              "generated_websites",
		MaxUploadMB:           16,
		ConvertTimeoutSeconds: 180,
		Provider:              string(llm.ProviderGemini),
		FetchTimeoutSeconds:   int(fetch.DefaultTimeout / time.Second),
		MaxPDFPages:           ingestion.DefaultMaxPages,
		ContextChars:          3000,
		LogLevel:              "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields; an absent API key only
// disables completion-backed features.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	if c.ConvertTimeoutSeconds < 0 || c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.ContextChars < 0 {
		return fmt.Errorf("config error: 'context_chars' must be non-negative")
	}

	switch llm.Provider(strings.ToLower(c.Provider)) {
	case "", llm.ProviderGemini, llm.ProviderGroq, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unsupported provider %q", c.Provider)
	}

	for tier := range c.Models {
		switch llm.ModelTier(tier) {
		case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		default:
			return fmt.Errorf("config error: unknown model tier %q", tier)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error", "disabled", "off", "none":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Boolean fields are kept as set.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.SitesDir == "" {
		result.SitesDir = defaults.SitesDir
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	if result.ConvertTimeoutSeconds == 0 {
		result.ConvertTimeoutSeconds = defaults.ConvertTimeoutSeconds
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.MaxPDFPages == 0 {
		result.MaxPDFPages = defaults.MaxPDFPages
	}
	if result.ContextChars == 0 {
		result.ContextChars = defaults.ContextChars
	}

	// Models: defaults first, file entries win
	if len(defaults.Models) > 0 {
		models := make(map[string]string, len(defaults.Models)+len(result.Models))
		for k, v := range defaults.Models {
			models[k] = v
		}
		for k, v := range result.Models {
			models[k] = v
		}
		result.Models = models
	}

	return result
}

// Provider API key variables, in detection order.
var providerKeys = []struct {
	provider llm.Provider
	env      string
}{
	{llm.ProviderGemini, "GEMINI_API_KEY"},
	{llm.ProviderGroq, "GROQ_API_KEY"},
	{llm.ProviderOpenAI, "OPENAI_API_KEY"},
}

// ApplyEnv overrides fields from environment variables read through lookup
// (os.LookupEnv in production). When no provider is named, the first
// provider with a key set is chosen.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("COMPLETION_PROVIDER"); ok && v != "" {
		c.Provider = strings.ToLower(strings.TrimSpace(v))
	} else if c.Provider == "" && c.APIKey == "" {
		for _, pk := range providerKeys {
			if v, ok := lookup(pk.env); ok && v != "" {
				c.Provider = string(pk.provider)
				break
			}
		}
	}
	if c.APIKey == "" {
		provider := llm.Provider(c.Provider)
		if provider == "" {
			provider = llm.ProviderGemini
		}
		for _, pk := range providerKeys {
			if pk.provider == provider {
				c.APIKey, _ = lookup(pk.env)
			}
		}
	}
	if v, ok := lookup("COMPLETION_BASE_URL"); ok && v != "" {
		c.BaseURL = v
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT %q is not a number", v)
		}
		c.Port = port
	}
	if v, ok := lookup("UPLOAD_DIR"); ok && v != "" {
		c.UploadDir = v
	}
	if v, ok := lookup("SITES_DIR"); ok && v != "" {
		c.SitesDir = v
	}
	if v, ok := lookup("USE_BROWSER"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: USE_BROWSER %q is not a boolean", v)
		}
		c.UseBrowser = b
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_JSON"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: LOG_JSON %q is not a boolean", v)
		}
		c.LogJSON = b
	}
	return nil
}

// Load builds the effective configuration: the optional file at path, the
// environment, then defaults, validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// HasCompletion reports whether a completion service can be used.
func (c *Config) HasCompletion() bool {
	return c.APIKey != ""
}

// LLM returns the completion service configuration.
func (c *Config) LLM() *llm.Config {
	cfg := llm.ConfigFor(llm.Provider(strings.ToLower(c.Provider)))
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	for tier, model := range c.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	return cfg
}

// Fetch returns the portfolio fetcher configuration.
func (c *Config) Fetch() fetch.Config {
	cfg := fetch.DefaultConfig()
	if c.FetchTimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.FetchTimeoutSeconds) * time.Second
	}
	cfg.Browser = c.UseBrowser
	cfg.InsecureRetry = c.InsecureRetry
	cfg.DisablePlaceholder = c.DisablePlaceholder
	return cfg
}

// PDF returns the resume PDF extraction options.
func (c *Config) PDF() ingestion.PDFOptions {
	return ingestion.PDFOptions{MaxPages: c.MaxPDFPages}
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// ConvertTimeout returns the per-conversion deadline.
func (c *Config) ConvertTimeout() time.Duration {
	return time.Duration(c.ConvertTimeoutSeconds) * time.Second
}

// Logging returns the logger configuration. Verbose forces debug level.
func (c *Config) Logging() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	if c.Verbose {
		cfg.Level = logging.DebugLevel
	}
	cfg.JSON = c.LogJSON
	return cfg
}
