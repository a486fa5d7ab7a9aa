package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/cinematch/cinematch/pkg/config"
	"github.com/cinematch/cinematch/pkg/domain"
)

// Explainer produces short natural language reasons for recommendations
type Explainer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// default system prompt for pick explanations
const defaultExplainPrompt = `You write one-sentence explanations for movie recommendations.
Given a movie and the signals behind the pick, explain in a friendly tone why the user might enjoy it.
Rules:
- one sentence, under 140 characters
- never mention scores, vectors, similarity or internal mechanics
- a "wildcard" pick should be framed as something outside the user's comfort zone worth a try
- respond with the sentence only, no quotes and no preamble`

// NewExplainer creates a new explainer
func NewExplainer(cfg config.LLMConfig) *Explainer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Explainer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: defaultExplainPrompt,
	}
}

// Explain generates a one-line reason for the pick. Callers treat failures as
// non-fatal and fall back to an empty explanation.
func (e *Explainer) Explain(ctx context.Context, pick domain.ScoredCandidate, profile *domain.TasteProfile) (string, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: float32(e.config.Temperature),
		MaxTokens:   e.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: e.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: e.buildPrompt(pick, profile)},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt describes the pick for the LLM
func (e *Explainer) buildPrompt(pick domain.ScoredCandidate, profile *domain.TasteProfile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Movie: %s", pick.Title))
	if pick.ReleaseYear > 0 {
		sb.WriteString(fmt.Sprintf(" (%d)", pick.ReleaseYear))
	}
	sb.WriteString("\n")

	if len(pick.Genres) > 0 {
		sb.WriteString(fmt.Sprintf("Genres: %s\n", strings.Join(pick.Genres, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Pick type: %s\n", pick.Strategy))

	if profile != nil && profile.ColdStart() {
		sb.WriteString("The user is new, we know little about their taste yet.\n")
	}
	if pick.Novelty > 0.7 {
		sb.WriteString("This is a departure from what the user has seen recently.\n")
	}

	return sb.String()
}
