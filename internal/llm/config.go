// Package llm provides the structured generation client: an abstraction over
// text-generation backends plus schema-constrained JSON extraction.
package llm

import "time"

// Temperature defaults. Structured generation runs colder because lower
// variance favors schema conformance.
const (
	DefaultProseTemperature      = 0.2
	DefaultStructuredTemperature = 0.1
)

// DefaultRequestTimeout bounds a single backend round-trip so a stalled
// generation call cannot stall a whole batch.
const DefaultRequestTimeout = 120 * time.Second

// Provider identifies a generation backend implementation.
type Provider string

// Supported providers. Selection happens by configuration, never by
// subclassing chains.
const (
	// ProviderOllama is a local model server speaking the Ollama
	// /api/generate protocol.
	ProviderOllama Provider = "ollama"
	// ProviderGemini is the hosted Google Gemini API.
	ProviderGemini Provider = "gemini"
)

// Config holds backend selection and connection settings.
type Config struct {
	Provider Provider
	// BaseURL is the Ollama server address (ignored for hosted providers).
	BaseURL string
	// Model is the model name passed to the backend.
	Model string
	// APIKey authenticates hosted providers.
	APIKey string
	// Timeout bounds each request; zero means DefaultRequestTimeout.
	Timeout time.Duration
}

// DefaultConfig returns the default Ollama configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOllama,
		BaseURL:  "http://localhost:11434",
		Model:    "llama3.1:8b-instruct",
		Timeout:  DefaultRequestTimeout,
	}
}

func (c *Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultRequestTimeout
}
