package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resource-library/internal/config"
)

// geminiModels is the part of *genai.Models the embedder uses.
type geminiModels interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// GeminiEmbedder embeds text with the Gemini API.
type GeminiEmbedder struct {
	models geminiModels
	model  string
}

func NewGeminiEmbedder(client *genai.Client, model string) *GeminiEmbedder {
	return newGeminiEmbedder(client.Models, model)
}

func newGeminiEmbedder(models geminiModels, model string) *GeminiEmbedder {
	if strings.TrimSpace(model) == "" {
		model = config.DefaultGeminiEmbeddingModel
	}
	return &GeminiEmbedder{models: models, model: model}
}

func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("embedding input is empty")
	}

	resp, err := g.models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return resp.Embeddings[0].Values, nil
}
