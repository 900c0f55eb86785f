package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.ErrorContains(t, err, "API key")
}

func TestNewOpenRouterProvider_ModelPassesThrough(t *testing.T) {
	tests := []string{"google/gemini-2.0-flash-exp", "meta-llama/llama-3-8b", "gpt"}
	for _, model := range tests {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
		require.NoError(t, err)
		want := model
		if model == "gpt" {
			// Friendly OpenAI aliases still resolve.
			want = "gpt-4.1"
		}
		assert.Equal(t, want, p.ModelID())
	}
}

func TestOpenRouterProvider_Generate(t *testing.T) {
	var (
		gotPath  string
		gotAuth  string
		gotTitle string
		gotModel string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")

		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-1",
			"model": "google/gemini-2.0-flash-exp",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": problemJSON},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 20, "total_tokens": 50},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-exp",
		BaseURL: srv.URL + "/api/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Write one Decimals problem."}},
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-or-test", gotAuth)
	assert.Equal(t, "assessgen", gotTitle)
	assert.Equal(t, "google/gemini-2.0-flash-exp", gotModel)
	assert.Equal(t, 50, resp.Usage.TotalTokens)
	assert.JSONEq(t, problemJSON, string(resp.Content))
}
