package llm

import (
	"context"
	"fmt"
)

// GenerateRequest is a free-text generation request.
type GenerateRequest struct {
	Prompt        string
	SystemMessage string
	// Temperature of zero means DefaultProseTemperature.
	Temperature float64
	// MaxTokens of zero leaves the backend default in place.
	MaxTokens int
}

// StructuredRequest is a schema-constrained generation request.
type StructuredRequest struct {
	Prompt        string
	SystemMessage string
	// Temperature of zero means DefaultStructuredTemperature.
	Temperature float64
	// Schema describes the expected JSON shape. Its source text is appended
	// to the prompt and, when present, the parsed payload is checked against
	// it.
	Schema Schema
}

// Client is an abstraction over text-generation backends.
type Client interface {
	// Generate produces free text. Transport or non-2xx failures return a
	// *BackendError.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	// GenerateStructured produces a JSON object conforming to the request
	// schema. Malformed output returns a *ParseError carrying the raw text;
	// callers must treat that as a first-class outcome, not a crash.
	GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]any, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderOllama, "":
		return NewOllamaClient(config), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", config.Provider)
	}
}
