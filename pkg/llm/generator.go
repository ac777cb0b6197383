// Package llm drafts replies to monitored feed entries with an OpenAI-compatible chat API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/postguard/pkg/config"
	"github.com/umputun/postguard/pkg/domain"
)

// Generator uses LLM to draft replies
type Generator struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// Request describes the entry a reply is drafted for
type Request struct {
	Entry     domain.ParsedItem
	Extracted string // full page text, optional
	Platform  domain.Platform
	Channel   string
	Keywords  []string // keywords the entry matched
}

// NewGenerator creates a new LLM generator
func NewGenerator(cfg config.LLMConfig) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 120
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for reply generation
const defaultSystemPrompt = `You are a helpful community member. Write concise, respectful, non-promotional answers.
Provide 1-3 short paragraphs at most.

Key guidelines:
- Be helpful and informative first
- Answer the question that was asked and stay on topic
- Follow the rules of the community the reply is posted to
- Avoid hype, sales language, links and calls to action
- Never argue, never repeat yourself
- Do not mention that you are an AI`

// Generate drafts a reply for the request. The result is cleaned from prompt echoes and trimmed to the word limit.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: float32(g.config.Temperature),
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: g.buildPrompt(req)},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	text := cleanText(resp.Choices[0].Message.Content, g.config.MaxWords)
	if text == "" {
		return "", fmt.Errorf("empty reply from llm")
	}
	return text, nil
}

// buildPrompt creates the prompt for the LLM
func (g *Generator) buildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Platform: %s\n", req.Platform))
	if req.Channel != "" {
		sb.WriteString(fmt.Sprintf("Community: %s\n", req.Channel))
	}
	if len(req.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords matched: %s\n", strings.Join(req.Keywords, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Title: %s\n", req.Entry.Title))

	post := req.Extracted
	if post == "" {
		post = req.Entry.Description
	}
	if post != "" {
		// limit content to first 500 runes
		if r := []rune(post); len(r) > 500 {
			post = string(r[:500]) + "..."
		}
		sb.WriteString(fmt.Sprintf("Post content: %s\n", post))
	}

	sb.WriteString("\nInstructions:\n")
	sb.WriteString("- Write a helpful, non-promotional reply\n")
	sb.WriteString(fmt.Sprintf("- Keep it under %d words\n", g.config.MaxWords))
	if req.Channel != "" {
		sb.WriteString(fmt.Sprintf("- Be respectful and follow the rules of %s\n", req.Channel))
	}
	sb.WriteString("- Do not include links or mention products\n\n")
	sb.WriteString("Reply:")
	return sb.String()
}

// cleanText removes lines echoing the prompt, collapses whitespace and trims to maxWords
func cleanText(text string, maxWords int) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "User:") || strings.HasPrefix(line, "Assistant:") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "instructions:") || strings.HasPrefix(lower, "reply:") || strings.HasPrefix(line, "---") {
			continue
		}
		kept = append(kept, line)
	}

	words := strings.Fields(strings.Join(kept, " "))
	if maxWords > 0 && len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}
	return strings.Join(words, " ")
}
