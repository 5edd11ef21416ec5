package service

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/cloudservices/kbot/types"
)

// OpenAIGenerator streams completions from an OpenAI-compatible endpoint,
// including local LLM servers exposing the same API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(baseURL, apiKey, model string) *OpenAIGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL // Set this to your local LLM server URL
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (g *OpenAIGenerator) GenerateStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	stream, err := g.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		handler(resp.Choices[0].Delta.Content)
	}
}
