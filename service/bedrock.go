package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/cloudservices/kbot/config"
	"github.com/cloudservices/kbot/types"
)

const anthropicVersion = "bedrock-2023-05-31"

// BedrockGenerator streams completions from a Bedrock Anthropic model.
type BedrockGenerator struct {
	client *bedrockruntime.Client
	cfg    config.GeneratorConfig
}

func NewBedrockGenerator(awsCfg aws.Config, cfg config.GeneratorConfig) *BedrockGenerator {
	return &BedrockGenerator{
		client: bedrockruntime.NewFromConfig(awsCfg),
		cfg:    cfg,
	}
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	TopK             int                `json:"top_k"`
	TopP             float64            `json:"top_p"`
	Temperature      float64            `json:"temperature"`
	StopSequences    []string           `json:"stop_sequences"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicChunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

func (g *BedrockGenerator) payload(prompt string) ([]byte, error) {
	return json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        g.cfg.MaxTokens,
		TopK:             g.cfg.TopK,
		TopP:             g.cfg.TopP,
		Temperature:      g.cfg.Temperature,
		StopSequences:    []string{},
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: prompt}},
			},
		},
	})
}

func (g *BedrockGenerator) GenerateStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	body, err := g.payload(prompt)
	if err != nil {
		return fmt.Errorf("error marshaling model payload: %w", err)
	}

	out, err := g.client.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(g.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return err
	}

	stream := out.GetStream()
	defer stream.Close()

	for event := range stream.Events() {
		chunk, ok := event.(*brtypes.ResponseStreamMemberChunk)
		if !ok {
			continue
		}
		var decoded anthropicChunk
		if err := json.Unmarshal(chunk.Value.Bytes, &decoded); err != nil {
			return fmt.Errorf("error decoding stream chunk: %w", err)
		}
		if decoded.Delta.Text != "" {
			handler(decoded.Delta.Text)
		}
	}
	return stream.Err()
}
