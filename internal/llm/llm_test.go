package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer oa-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "summarize this", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  **Key Points:**\n\nthings  "}}]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(OpenAIOptions{APIKey: "oa-key", BaseURL: srv.URL + "/", Timeout: time.Second})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "**Key Points:**\n\nthings", text)
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(OpenAIOptions{APIKey: "oa-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClientUpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(OpenAIOptions{APIKey: "oa-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "generation must not retry")
}

func newTestGeminiClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(context.Background(), GeminiOptions{APIKey: "gm-key", BaseURL: srv.URL + "/", Timeout: time.Second})
	require.NoError(t, err)
	return client
}

func TestGeminiClientGenerate(t *testing.T) {
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "gm-key", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "summarize this", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  **Key Points:**\n\nthings  "}]},"finishReason":"STOP"}]}`))
	})

	text, err := client.Generate(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "**Key Points:**\n\nthings", text)
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestConstructorsRequireKey(t *testing.T) {
	_, err := NewOpenAIClient(OpenAIOptions{})
	require.Error(t, err)

	_, err = NewGeminiClient(context.Background(), GeminiOptions{APIKey: "  "})
	require.Error(t, err)
}

func TestPlaceholderGeneratorContainsAllHeaders(t *testing.T) {
	text, err := PlaceholderGenerator{}.Generate(context.Background(), "ignored")
	require.NoError(t, err)

	for _, header := range []string{"**Key Points:**", "**Overall Summary:**", "**AI Analysis:**", "**Video Purpose:**", "**Conclusions:**"} {
		assert.Contains(t, text, header)
	}
	assert.Equal(t, 5, strings.Count(text, PlaceholderNotice))
}
