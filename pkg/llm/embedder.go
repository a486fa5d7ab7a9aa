package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/cinematch/cinematch/pkg/config"
)

// Embedder turns review text into feature vectors using an OpenAI-compatible
// embeddings endpoint
type Embedder struct {
	client *openai.Client
	config config.LLMConfig
}

// NewEmbedder creates a new embedder
func NewEmbedder(cfg config.LLMConfig) *Embedder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Embedder{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Embed requests a vector for the given text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, &PermanentError{Reason: "empty text"}
	}

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.config.Embedding.Model),
		Dimensions: e.config.Embedding.Dimensions,
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, classifyError(err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}

	embedding := resp.Data[0].Embedding
	vector := make([]float64, len(embedding))
	for i, v := range embedding {
		vector[i] = float64(v)
	}
	return vector, nil
}

// PermanentError marks a failure that retrying cannot fix, e.g. a rejected
// input. Jobs hitting one go straight to the dead letter queue.
type PermanentError struct {
	Reason string
	Err    error
}

func (e *PermanentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("permanent: %s: %v", e.Reason, e.Err)
	}
	return "permanent: " + e.Reason
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// classifyError separates retryable provider failures from permanent
// rejections. Rate limits, server errors and timeouts are worth retrying;
// other 4xx responses are not.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("provider rate limited: %w", err)
		case apiErr.HTTPStatusCode >= 500:
			return fmt.Errorf("provider unavailable: %w", err)
		case apiErr.HTTPStatusCode >= 400:
			return &PermanentError{Reason: fmt.Sprintf("provider rejected request (%d)", apiErr.HTTPStatusCode), Err: err}
		}
	}
	// network errors and timeouts are transient
	return fmt.Errorf("embedding request failed: %w", err)
}

// Retryable reports whether a failed embed attempt should be retried
func Retryable(err error) bool {
	var perm *PermanentError
	return !errors.As(err, &perm)
}
