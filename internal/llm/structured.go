package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Schema describes the JSON shape a structured request must produce.
type Schema struct {
	// Title names the record type (e.g. "JobRequirements").
	Title string
	// Source is the raw JSON Schema text. It is embedded in the prompt and,
	// when non-empty, used to check the parsed payload.
	Source string
}

// jsonDirective is appended to the system message of every structured request.
const jsonDirective = "You must respond with valid JSON only, no other text."

// buildStructuredPrompt appends schema-conformance instructions to the prompt.
func buildStructuredPrompt(prompt string, schema Schema) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nYou must respond ONLY with a valid JSON object matching this schema")
	if schema.Title != "" {
		sb.WriteString(" (")
		sb.WriteString(schema.Title)
		sb.WriteString(")")
	}
	sb.WriteString(":\n")
	sb.WriteString(schema.Source)
	sb.WriteString("\n\nResponse:\n")
	return sb.String()
}

// structuredSystemMessage adds the JSON-only directive to a system message.
func structuredSystemMessage(systemMessage string) string {
	if systemMessage == "" {
		return jsonDirective
	}
	return systemMessage + "\n" + jsonDirective
}

// ExtractJSONObject locates the substring between the first '{' and the last
// '}' in text. Models routinely wrap JSON in prose or code fences; everything
// outside the outermost braces is discarded. The second return value is false
// when no brace pair exists.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// parseStructured turns raw model output into a JSON object, reporting every
// failure mode as a *ParseError that carries the raw text.
func parseStructured(raw string, schema Schema) (map[string]any, error) {
	jsonText, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, &ParseError{
			Message: "no JSON object found in response",
			Raw:     raw,
		}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, &ParseError{
			Message: "response is not valid JSON",
			Raw:     raw,
			Cause:   err,
		}
	}

	if schema.Source != "" {
		if err := checkSchema(schema.Source, jsonText); err != nil {
			return nil, &ParseError{
				Message: fmt.Sprintf("response violates %s schema", schema.Title),
				Raw:     raw,
				Cause:   err,
			}
		}
	}

	return payload, nil
}

// checkSchema validates a JSON document against a JSON Schema source string.
func checkSchema(schemaSource, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaSource),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		// A broken schema is a programming error in this repo, not a model
		// formatting slip; treat the payload as acceptable.
		return nil
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(desc.Description())
	}
	return errors.New(sb.String())
}

// Decode remarshals a structured payload into a typed record.
func Decode(payload map[string]any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to re-marshal payload: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

// RetryStructured wraps GenerateStructured with bounded retry-with-backoff.
// Only *ParseError triggers a re-prompt: transient formatting slips are far
// more common than transport failures, which propagate immediately.
func RetryStructured(ctx context.Context, client Client, req StructuredRequest, attempts int, backoff time.Duration) (map[string]any, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff * time.Duration(i)):
			}
		}

		payload, err := client.GenerateStructured(ctx, req)
		if err == nil {
			return payload, nil
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
