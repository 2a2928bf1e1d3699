package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// GroqProvider implements LLMProvider against Groq's OpenAI-compatible API.
type GroqProvider struct {
	client *openai.Client
	model  string
}

// NewGroqProvider builds a provider. An empty baseURL means GroqBaseURL.
func NewGroqProvider(apiKey, baseURL string) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	cfg.BaseURL = baseURL
	return &GroqProvider{client: openai.NewClientWithConfig(cfg), model: GroqModel}
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", fmt.Errorf("groq completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices: %w", ErrEmptyResponse)
	}
	out := cleanOutput(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
