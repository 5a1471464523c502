package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for the hosted Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, &BackendError{
			Provider: string(ProviderGemini),
			Message:  "API key is required",
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, &BackendError{
			Provider: string(ProviderGemini),
			Message:  "failed to create client",
			Cause:    err,
		}
	}

	model := config.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Generate produces free text from the Gemini API.
func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = DefaultProseTemperature
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(float32(temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.SystemMessage != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemMessage)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", &BackendError{
			Provider: string(ProviderGemini),
			Message:  "failed to generate content",
			Cause:    err,
		}
	}

	return extractTextFromResponse(resp)
}

// GenerateStructured produces a JSON object via the same prompt-and-parse
// contract as the Ollama provider, with the JSON response MIME type set as an
// extra nudge toward conformance.
func (c *GeminiClient) GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]any, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = DefaultStructuredTemperature
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(float32(temperature))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(structuredSystemMessage(req.SystemMessage))},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildStructuredPrompt(req.Prompt, req.Schema)))
	if err != nil {
		return nil, &BackendError{
			Provider: string(ProviderGemini),
			Message:  "failed to generate content",
			Cause:    err,
		}
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return parseStructured(raw, req.Schema)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

var _ Client = (*GeminiClient)(nil)

// extractTextFromResponse flattens the first candidate's text parts.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &BackendError{
			Provider: string(ProviderGemini),
			Message:  "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &BackendError{
			Provider: string(ProviderGemini),
			Message:  "no content in response",
		}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &BackendError{
			Provider: string(ProviderGemini),
			Message:  "no text parts in response",
		}
	}

	return strings.Join(parts, ""), nil
}
