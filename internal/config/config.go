// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Paths
	Job        string `json:"job,omitempty"`         // Path to job posting text file
	JobURL     string `json:"job_url,omitempty"`     // URL to fetch job posting from
	Profile    string `json:"profile,omitempty"`     // Path to candidate profile JSON
	FormatFile string `json:"format_file,omitempty"` // Path to formatting fingerprint JSON
	OutputDir  string `json:"output_dir,omitempty"`  // Directory for generated PDFs
	FontDir    string `json:"font_dir,omitempty"`    // Directory holding TTF font files

	// Generation backend
	Provider     string `json:"provider,omitempty"`       // "ollama" or "gemini"
	OllamaURL    string `json:"ollama_url,omitempty"`     // Ollama base URL
	Model        string `json:"model,omitempty"`          // Model name for the chosen provider
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Batch behavior
	Limit       int  `json:"limit,omitempty"`       // Max jobs per batch run
	Concurrency int  `json:"concurrency,omitempty"` // Concurrent jobs per batch
	Verbose     bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	llmDefaults := llm.DefaultConfig()
	return Config{
		OutputDir:   "./generated_resumes",
		Provider:    string(llmDefaults.Provider),
		OllamaURL:   llmDefaults.BaseURL,
		Model:       llmDefaults.Model,
		Limit:       10,
		Concurrency: pipeline.DefaultConcurrency,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills backend and storage settings from the environment for any
// field the config file and flags left empty.
func (c *Config) FromEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.OllamaURL, "OLLAMA_BASE_URL")
	fill(&c.Model, "OLLAMA_MODEL")
	fill(&c.Provider, "LLM_PROVIDER")
	fill(&c.GeminiAPIKey, "GEMINI_API_KEY")
	fill(&c.DatabaseURL, "DATABASE_URL")
}

// Validate checks that the configuration has valid values.
// Required fields are enforced by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	switch c.Provider {
	case "", string(llm.ProviderOllama):
	case string(llm.ProviderGemini):
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: gemini provider requires an API key")
		}
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	for _, field := range []struct{ dst *string; def string }{
		{&result.Job, defaults.Job},
		{&result.JobURL, defaults.JobURL},
		{&result.Profile, defaults.Profile},
		{&result.FormatFile, defaults.FormatFile},
		{&result.OutputDir, defaults.OutputDir},
		{&result.FontDir, defaults.FontDir},
		{&result.Provider, defaults.Provider},
		{&result.OllamaURL, defaults.OllamaURL},
		{&result.Model, defaults.Model},
		{&result.GeminiAPIKey, defaults.GeminiAPIKey},
		{&result.DatabaseURL, defaults.DatabaseURL},
	} {
		if *field.dst == "" {
			*field.dst = field.def
		}
	}

	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// LLMConfig converts the CLI configuration into a backend client config.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.OllamaURL != "" {
		cfg.BaseURL = c.OllamaURL
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	cfg.APIKey = c.GeminiAPIKey
	return cfg
}
