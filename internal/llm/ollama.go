package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ollamaOptions carries backend tuning knobs inside the request payload.
type ollamaOptions struct {
	NumPredict int `json:"num_predict,omitempty"`
}

// ollamaRequest is the /api/generate request body.
type ollamaRequest struct {
	Model       string        `json:"model"`
	Prompt      string        `json:"prompt"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Stream      bool          `json:"stream"`
	Options     ollamaOptions `json:"options"`
}

// ollamaResponse is the subset of the /api/generate response we consume.
type ollamaResponse struct {
	Response string `json:"response"`
}

// OllamaClient implements Client against a local Ollama model server.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaClient creates a client for the configured Ollama server.
func NewOllamaClient(config *Config) *OllamaClient {
	if config == nil {
		config = DefaultConfig()
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
	}
}

// Generate produces free text from the model server.
func (c *OllamaClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = DefaultProseTemperature
	}

	payload := ollamaRequest{
		Model:       c.model,
		Prompt:      req.Prompt,
		Temperature: temperature,
		System:      req.SystemMessage,
		Options:     ollamaOptions{NumPredict: req.MaxTokens},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &BackendError{
			Provider: string(ProviderOllama),
			Message:  "failed to encode request",
			Cause:    err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &BackendError{
			Provider: string(ProviderOllama),
			Message:  "failed to build request",
			Cause:    err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Timeouts land here and surface as backend failures so a batch
		// never stalls on a single unbounded call.
		return "", &BackendError{
			Provider: string(ProviderOllama),
			Message:  "request failed",
			Cause:    err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &BackendError{
			Provider:   string(ProviderOllama),
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(snippet)),
		}
	}

	var decoded ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &BackendError{
			Provider: string(ProviderOllama),
			Message:  "failed to decode response",
			Cause:    err,
		}
	}

	return decoded.Response, nil
}

// GenerateStructured produces a JSON object by prompting for schema
// conformance and parsing the text between the outermost braces.
func (c *OllamaClient) GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]any, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = DefaultStructuredTemperature
	}

	raw, err := c.Generate(ctx, GenerateRequest{
		Prompt:        buildStructuredPrompt(req.Prompt, req.Schema),
		SystemMessage: structuredSystemMessage(req.SystemMessage),
		Temperature:   temperature,
	})
	if err != nil {
		return nil, err
	}

	return parseStructured(raw, req.Schema)
}

// Close is a no-op; the HTTP client holds no long-lived resources.
func (c *OllamaClient) Close() error {
	return nil
}

// BaseURL returns the configured server address, mainly for startup logging.
func (c *OllamaClient) BaseURL() string {
	return c.baseURL
}

var _ Client = (*OllamaClient)(nil)

// Ping verifies the model server is reachable. Used at startup so an
// unreachable backend fails the whole run instead of every job.
func (c *OllamaClient) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &BackendError{
			Provider: string(ProviderOllama),
			Message:  "server unreachable",
			Cause:    err,
		}
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &BackendError{
			Provider:   string(ProviderOllama),
			StatusCode: resp.StatusCode,
			Message:    "unexpected ping status",
		}
	}
	return nil
}
