package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/config"
	"github.com/umputun/postguard/pkg/domain"
)

func chatServer(t *testing.T, content string, check func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		}}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerator_Generate(t *testing.T) {
	server := chatServer(t, "Reply:\nSQLite handles this fine if you keep one writer.\n\nUse WAL mode and a busy timeout.",
		func(req openai.ChatCompletionRequest) {
			assert.Equal(t, "llama3", req.Model)
			assert.Equal(t, 200, req.MaxTokens)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
			assert.Equal(t, defaultSystemPrompt, req.Messages[0].Content)
			user := req.Messages[1].Content
			assert.Contains(t, user, "Platform: reddit")
			assert.Contains(t, user, "Community: golang")
			assert.Contains(t, user, "Keywords matched: sqlite, locking")
			assert.Contains(t, user, "Title: sqlite locks under load")
			assert.Contains(t, user, "Post content: we see database is locked errors")
			assert.Contains(t, user, "Keep it under 120 words")
		})

	gen := NewGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "llama3",
		Temperature: 0.7, MaxTokens: 200, Timeout: 5 * time.Second})
	text, err := gen.Generate(context.Background(), Request{
		Entry:    domain.ParsedItem{Title: "sqlite locks under load", Description: "we see database is locked errors"},
		Platform: domain.PlatformReddit, Channel: "golang", Keywords: []string{"sqlite", "locking"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SQLite handles this fine if you keep one writer. Use WAL mode and a busy timeout.", text)
}

func TestGenerator_ExtractedTextPreferred(t *testing.T) {
	long := strings.Repeat("word ", 200)
	server := chatServer(t, "ok then", func(req openai.ChatCompletionRequest) {
		user := req.Messages[1].Content
		assert.NotContains(t, user, "short description")
		assert.Contains(t, user, "Post content: word word")
		assert.Contains(t, user, "...\n", "long content is cut")
	})
	gen := NewGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
	_, err := gen.Generate(context.Background(), Request{
		Entry: domain.ParsedItem{Title: "t", Description: "short description"}, Extracted: long, Platform: domain.PlatformBluesky,
	})
	require.NoError(t, err)
}

func TestGenerator_CustomSystemPrompt(t *testing.T) {
	server := chatServer(t, "fine", func(req openai.ChatCompletionRequest) {
		assert.Equal(t, "be brief", req.Messages[0].Content)
	})
	gen := NewGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m", SystemPrompt: "be brief"})
	text, err := gen.Generate(context.Background(), Request{Entry: domain.ParsedItem{Title: "t"}, Platform: domain.PlatformReddit})
	require.NoError(t, err)
	assert.Equal(t, "fine", text)
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("empty reply", func(t *testing.T) {
		server := chatServer(t, "Reply:\n---\n", nil)
		gen := NewGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
		_, err := gen.Generate(context.Background(), Request{Entry: domain.ParsedItem{Title: "t"}})
		require.EqualError(t, err, "empty reply from llm")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()
		gen := NewGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
		_, err := gen.Generate(context.Background(), Request{Entry: domain.ParsedItem{Title: "t"}})
		require.EqualError(t, err, "no response from llm")
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"model is overloaded","type":"server_error"}}`))
		}))
		defer server.Close()
		gen := NewGenerator(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "m"})
		_, err := gen.Generate(context.Background(), Request{Entry: domain.ParsedItem{Title: "t"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
	})
}

func TestCleanText(t *testing.T) {
	tbl := []struct {
		name     string
		in       string
		maxWords int
		want     string
	}{
		{"plain", "hello there", 10, "hello there"},
		{"collapse whitespace", "  hello \n\n  there   friend ", 10, "hello there friend"},
		{"drop prompt echo", "Instructions: be nice\nUser: hi\nAssistant: hello\nactual answer", 10, "actual answer"},
		{"trim words", "one two three four five", 3, "one two three..."},
		{"no limit", "one two three", 0, "one two three"},
		{"separator", "---\nanswer", 10, "answer"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in, tt.maxWords))
		})
	}
}
