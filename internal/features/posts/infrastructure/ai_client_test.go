package infrastructure

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewAIClientUnknownProvider(t *testing.T) {
	_, err := NewAIClient(context.Background(), AIConfig{Provider: "watson"}, nil)
	assert.Error(t, err)
}

func TestNewAIClientRequiresKey(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderOpenAIResponses, ProviderGemini, ProviderAnthropic} {
		t.Run(provider, func(t *testing.T) {
			client, err := NewAIClient(context.Background(), AIConfig{Provider: provider}, nil)
			assert.Error(t, err)
			// assert.Nil would accept a nil pointer wrapped in the interface.
			assert.True(t, client == nil, "expected a nil AIClient, got %#v", client)
		})
	}
}

func TestNewAIClientMock(t *testing.T) {
	client, err := NewAIClient(context.Background(), AIConfig{Provider: "MOCK"}, nil)
	require.NoError(t, err)
	assert.IsType(t, MockClient{}, client)
}

func TestMockClientReturnsPostsDocument(t *testing.T) {
	out, err := MockClient{}.Generate(context.Background(), ModelRequest{
		Prompt:      "Write 3 posts\nmore",
		Model:       "gpt-5.1",
		Temperature: 0.7,
	})
	require.NoError(t, err)
	posts := gjson.Get(out, "posts")
	require.True(t, posts.IsArray())
	assert.Equal(t, "[gpt-5.1 @ 0.7] Write 3 posts", posts.Array()[0].Get("content").String())
}

func TestOpenAIClientChatCompletion(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": `{"posts":[{"content":"hi"}]}`},
			}},
		})
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(AIConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), ModelRequest{
		Prompt:      "prompt text",
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		WebSearch:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"posts":[{"content":"hi"}]}`, out)

	assert.Equal(t, "gpt-4o-mini", gjson.GetBytes(body, "model").String())
	assert.Equal(t, "prompt text", gjson.GetBytes(body, "messages.0.content").String())
	assert.InDelta(t, 0.5, gjson.GetBytes(body, "temperature").Float(), 1e-6)
	assert.Equal(t, "json_object", gjson.GetBytes(body, "response_format.type").String())
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(AIConfig{APIKey: "k", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), ModelRequest{Prompt: "p", Model: "m"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOpenAIClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(AIConfig{APIKey: "k", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), ModelRequest{Prompt: "p", Model: "m"})
	assert.Error(t, err)
}

func TestModelCatalogFallback(t *testing.T) {
	catalog := NewModelCatalog()
	assert.Equal(t, int64(fallbackMaxTokens), catalog.DefaultMaxTokens("definitely-not-a-model"))
	assert.False(t, catalog.Known("definitely-not-a-model"))

	var nilCatalog *ModelCatalog
	assert.Equal(t, int64(fallbackMaxTokens), nilCatalog.DefaultMaxTokens("x"))
}
