package llm

import (
	"context"
	"time"
)

// retryingClient wraps a Client so structured generation re-prompts on
// ParseError. Prose generation and backend errors pass through untouched.
type retryingClient struct {
	Client
	attempts int
	backoff  time.Duration
}

// WithRetry returns a client whose GenerateStructured re-prompts up to
// attempts times when the model's output fails to parse. attempts below one
// is treated as one.
func WithRetry(client Client, attempts int, backoff time.Duration) Client {
	if attempts < 1 {
		attempts = 1
	}
	return &retryingClient{Client: client, attempts: attempts, backoff: backoff}
}

func (c *retryingClient) GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]any, error) {
	return RetryStructured(ctx, c.Client, req, c.attempts, c.backoff)
}
