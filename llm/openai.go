// Package llm provides answer functions backed by language model APIs.
package llm

import (
	"context"
	"fmt"

	"github.com/averoth/datachat/core/rag"
	"github.com/averoth/datachat/helper"
	openai "github.com/sashabaranov/go-openai"
)

const systemPromptTemplate = "You are a helpful assistant for database and CSV data analysis. Context: %v"

// OpenAIProvider answers questions through an OpenAI-compatible chat
// completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIProvider creates a provider for the given API key and model.
// An empty model defaults to gpt-3.5-turbo.
func NewOpenAIProvider(apiKey string, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, helper.NewError("create openai provider", fmt.Errorf("api key is empty"))
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &OpenAIProvider{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   1000,
		temperature: 0.7,
	}, nil
}

// NewOpenAIProviderWithBaseURL creates a provider against an
// OpenAI-compatible endpoint, for local model servers.
func NewOpenAIProviderWithBaseURL(apiKey string, model string, baseURL string) (*OpenAIProvider, error) {
	provider, err := NewOpenAIProvider(apiKey, model)
	if err != nil {
		return nil, err
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	provider.client = openai.NewClientWithConfig(cfg)

	return provider, nil
}

// Answer sends the query with the retrieved context as system prompt
// and returns the model's reply.
func (p *OpenAIProvider) Answer(ctx context.Context, query string, contextText string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPromptTemplate, contextText),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: query,
			},
		},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return "", helper.NewError("chat completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", helper.NewError("chat completion", fmt.Errorf("no choices in response"))
	}

	return resp.Choices[0].Message.Content, nil
}

// AnswerFunc adapts the provider to the orchestrator's answer function.
func (p *OpenAIProvider) AnswerFunc() rag.AnswerFunc {
	return p.Answer
}

// StaticAnswerFunc returns an answer function that always replies with
// the given text. Useful for examples and tests without an API key.
func StaticAnswerFunc(answer string) rag.AnswerFunc {
	return func(ctx context.Context, query string, contextText string) (string, error) {
		return answer, nil
	}
}
