package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiServer(t *testing.T, status int, text string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_ = json.NewDecoder(r.Body).Decode(&captured)

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestGeminiGenerate(t *testing.T) {
	srv, captured := geminiServer(t, http.StatusOK, `{"summary":"ok"}`)
	g := NewGeminiClient("k", "test-model", time.Second).WithBaseURL(srv.URL)

	out, err := g.Generate(context.Background(), Request{Name: "x", Prompt: "hi", Schema: weeklySummarySchema})
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)

	cfg, _ := (*captured)["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	assert.NotNil(t, cfg["responseSchema"])
}

func TestGeminiErrors(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusServiceUnavailable, "")
	_, err := NewGeminiClient("k", "test-model", time.Second).WithBaseURL(srv.URL).Generate(context.Background(), Request{Prompt: "hi"})
	assert.ErrorContains(t, err, "gemini api error (503)")

	srv, _ = geminiServer(t, http.StatusOK, "sorry, no json")
	_, err = NewGeminiClient("k", "test-model", time.Second).WithBaseURL(srv.URL).Generate(context.Background(), Request{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrNonJSON)

	_, err = NewGeminiClient("", "test-model", time.Second).Generate(context.Background(), Request{Prompt: "hi"})
	assert.Error(t, err)
}
