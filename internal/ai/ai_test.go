package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanOutput(t *testing.T) {
	require.Equal(t, "# Day 1", cleanOutput("```markdown\n# Day 1\n```"))
	require.Equal(t, "# Day 1", cleanOutput("  # Day 1  \n"))
	require.Equal(t, "", cleanOutput("```\n```"))
}

func groqServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		if r.URL.Path != "/chat/completions" || r.Header.Get("Authorization") != "Bearer gsk_test" ||
			json.NewDecoder(r.Body).Decode(&req) != nil || req.Model != GroqModel || len(req.Messages) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  GroqModel,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGroqGenerateItinerary(t *testing.T) {
	srv := groqServer(t, "# Rome\n\n## Day 1\nColosseum")
	p := NewGroqProvider("gsk_test", srv.URL)

	out, err := p.GenerateItinerary(context.Background(), "plan Rome")

	require.NoError(t, err)
	require.Equal(t, "# Rome\n\n## Day 1\nColosseum", out)
	require.Equal(t, "groq", p.Name())
}

func TestGroqEmptyContent(t *testing.T) {
	srv := groqServer(t, "   ")
	p := NewGroqProvider("gsk_test", srv.URL)

	_, err := p.GenerateItinerary(context.Background(), "plan Rome")

	require.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestGroqUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	_, err := NewGroqProvider("gsk_test", srv.URL).GenerateItinerary(context.Background(), "x")

	require.Error(t, err)
	require.Contains(t, err.Error(), "groq completion error")
}
