package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/cloudservices/kbot/types"
)

// GeminiGenerator streams completions from Gemini, rotating between API keys
// when one is rejected or throttled.
type GeminiGenerator struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	modelName  string
	mu         sync.Mutex
}

func NewGeminiGenerator(apiKeys []string, modelName string) (*GeminiGenerator, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	g := &GeminiGenerator{
		apiKeys:   apiKeys,
		modelName: modelName,
	}
	if err := g.initClient(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GeminiGenerator) initClient() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(g.apiKeys[g.currentKey]))
	if err != nil {
		return err
	}
	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	return nil
}

func (g *GeminiGenerator) rotateAPIKey() error {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	if err := g.client.Close(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.mu.Unlock()
	return g.initClient()
}

func (g *GeminiGenerator) GenerateStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	iter := g.model.GenerateContentStream(ctx, genai.Text(prompt))

	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			// Try the next API key once before giving up on this attempt.
			if rerr := g.rotateAPIKey(); rerr != nil {
				return rerr
			}
			return err
		}

		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					handler(string(text))
				}
			}
		}
	}
}
