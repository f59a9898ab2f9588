// Package llm defines the minimal chat-completion seam between the
// content provider and an OpenAI-compatible backend, so that stubs and
// test fakes can stand in for a real model.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the single capability the content provider needs from a
// model backend.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient adapts *openai.Client to the Client interface.
type OpenAIClient struct {
	Inner *openai.Client
}

func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return c.Inner.CreateChatCompletion(ctx, request)
}

// New builds a Client against an OpenAI-compatible endpoint. baseURL
// may be empty for the hosted default.
func New(baseURL, apiKey string) Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{Inner: openai.NewClientWithConfig(cfg)}
}
