package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/logging"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"port": 8080,
		"provider": "groq",
		"models": {"standard": "llama-3.3-70b-versatile"},
		"use_browser": true,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Models["standard"])
	assert.True(t, cfg.UseBrowser)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "port: 9000\nsites_dir: sites\nmax_pdf_pages: 3\nlog_json: true\n")

			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, 9000, cfg.Port)
			assert.Equal(t, "sites", cfg.SitesDir)
			assert.Equal(t, 3, cfg.MaxPDFPages)
			assert.True(t, cfg.LogJSON)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"empty path", "", "config path is empty"},
		{"missing file", "/nonexistent/path/config.json", "failed to read config file"},
		{"invalid JSON", writeFile(t, "config.json", `{ invalid json }`), "failed to parse config JSON"},
		{"invalid YAML", writeFile(t, "config.yaml", "port: [1"), "failed to parse config YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rel.json"), []byte(`{"port": 7000}`), 0644))
	t.Chdir(dir)

	cfg, err := LoadConfig("rel.json")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"defaults", Defaults(), ""},
		{"bad port", Config{Port: 70000}, "port"},
		{"negative upload", Config{MaxUploadMB: -1}, "max_upload_mb"},
		{"negative timeout", Config{FetchTimeoutSeconds: -1}, "timeouts"},
		{"negative context", Config{ContextChars: -5}, "context_chars"},
		{"unknown provider", Config{Provider: "anthropic"}, "unsupported provider"},
		{"unknown tier", Config{Models: map[string]string{"huge": "x"}}, "unknown model tier"},
		{"unknown log level", Config{LogLevel: "loud"}, "unknown log level"},
		{"provider case", Config{Provider: "OpenAI"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		Port:     8080,
		Models:   map[string]string{"standard": "custom"},
		LogJSON:  true,
		Provider: "groq",
	}
	defaults := Defaults()
	defaults.Models = map[string]string{"standard": "base", "lite": "small"}

	got := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 8080, got.Port)
	assert.Equal(t, "groq", got.Provider)
	assert.Equal(t, "uploads", got.UploadDir)
	assert.Equal(t, "generated_websites", got.SitesDir)
	assert.Equal(t, 16, got.MaxUploadMB)
	assert.Equal(t, 2, got.MaxPDFPages)
	assert.Equal(t, 3000, got.ContextChars)
	assert.Equal(t, map[string]string{"standard": "custom", "lite": "small"}, got.Models)
	assert.True(t, got.LogJSON)

	// The receiver is unchanged.
	assert.Empty(t, cfg.UploadDir)
	assert.Equal(t, map[string]string{"standard": "custom"}, cfg.Models)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		env          map[string]string
		wantProvider string
		wantKey      string
	}{
		{"gemini key", Config{}, map[string]string{"GEMINI_API_KEY": "g"}, "gemini", "g"},
		{"groq detected", Config{}, map[string]string{"GROQ_API_KEY": "q"}, "groq", "q"},
		{"gemini preferred", Config{}, map[string]string{"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g"}, "gemini", "g"},
		{"explicit provider", Config{}, map[string]string{"COMPLETION_PROVIDER": "OpenAI", "GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"}, "openai", "o"},
		{"file provider", Config{Provider: "groq"}, map[string]string{"GEMINI_API_KEY": "g", "GROQ_API_KEY": "q"}, "groq", "q"},
		{"file key wins", Config{Provider: "gemini", APIKey: "file"}, map[string]string{"GEMINI_API_KEY": "g"}, "gemini", "file"},
		{"nothing set", Config{}, map[string]string{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			require.NoError(t, cfg.ApplyEnv(envMap(tt.env)))
			assert.Equal(t, tt.wantProvider, cfg.Provider)
			assert.Equal(t, tt.wantKey, cfg.APIKey)
		})
	}
}

func TestApplyEnv_ServerAndLogging(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		"PORT":        "8081",
		"UPLOAD_DIR":  "/tmp/up",
		"SITES_DIR":   "/tmp/sites",
		"USE_BROWSER": "true",
		"LOG_LEVEL":   "debug",
		"LOG_JSON":    "1",
	})))

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "/tmp/up", cfg.UploadDir)
	assert.Equal(t, "/tmp/sites", cfg.SitesDir)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
}

func TestApplyEnv_Errors(t *testing.T) {
	for _, env := range []map[string]string{
		{"PORT": "http"},
		{"LOG_JSON": "maybe"},
		{"USE_BROWSER": "sometimes"},
	} {
		cfg := Config{}
		assert.Error(t, cfg.ApplyEnv(envMap(env)))
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("COMPLETION_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_JSON", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.False(t, cfg.HasCompletion())

	path := writeFile(t, "config.yaml", "provider: nope\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestAdapters(t *testing.T) {
	cfg := Defaults()
	cfg.Provider = "groq"
	cfg.Models = map[string]string{"lite": "tiny"}
	cfg.FetchTimeoutSeconds = 5
	cfg.UseBrowser = true
	cfg.MaxUploadMB = 2
	cfg.Verbose = true

	l := cfg.LLM()
	assert.Equal(t, llm.ProviderGroq, l.Provider)
	assert.Equal(t, llm.GroqBaseURL, l.BaseURL)
	assert.Equal(t, "tiny", l.GetModel(llm.TierLite))

	f := cfg.Fetch()
	assert.Equal(t, 5*time.Second, f.Timeout)
	assert.True(t, f.Browser)

	assert.Equal(t, 2, cfg.PDF().MaxPages)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 180*time.Second, cfg.ConvertTimeout())
	assert.Equal(t, logging.DebugLevel, cfg.Logging().Level)
}
