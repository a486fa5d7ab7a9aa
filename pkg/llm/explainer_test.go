package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematch/cinematch/pkg/config"
	"github.com/cinematch/cinematch/pkg/domain"
)

func TestExplainer_Explain(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		gotPrompt = req.Messages[1].Content

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  A slow-burn crime saga that matches your taste for tense character studies.\n"}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck // test server
	}))
	defer server.Close()

	explainer := NewExplainer(config.LLMConfig{
		Endpoint: server.URL + "/v1",
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
	})

	pick := domain.ScoredCandidate{
		Candidate: domain.Candidate{
			ItemID:      949,
			Title:       "Heat",
			Genres:      []string{"crime", "thriller"},
			ReleaseYear: 1995,
		},
		Strategy: domain.StrategySafe,
	}

	explanation, err := explainer.Explain(context.Background(), pick, &domain.TasteProfile{UserID: "u1", Vector: []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, "A slow-burn crime saga that matches your taste for tense character studies.", explanation)

	assert.Contains(t, gotPrompt, "Heat (1995)")
	assert.Contains(t, gotPrompt, "crime, thriller")
	assert.Contains(t, gotPrompt, "safe")
}

func TestExplainer_ColdStartHint(t *testing.T) {
	explainer := NewExplainer(config.LLMConfig{Model: "gpt-4o-mini"})

	pick := domain.ScoredCandidate{
		Candidate: domain.Candidate{Title: "Alien"},
		Strategy:  domain.StrategyWildcard,
		Novelty:   0.9,
	}
	prompt := explainer.buildPrompt(pick, &domain.TasteProfile{UserID: "new"})

	assert.Contains(t, prompt, "user is new")
	assert.Contains(t, prompt, "departure")
	assert.True(t, strings.Contains(prompt, "wildcard"))
}

func TestExplainer_ServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	explainer := NewExplainer(config.LLMConfig{Endpoint: server.URL + "/v1", Model: "gpt-4o-mini"})

	_, err := explainer.Explain(context.Background(), domain.ScoredCandidate{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
}
