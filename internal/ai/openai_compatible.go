package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"resource-library/internal/config"
)

// Embedder turns text into a single embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingConfig holds API settings for text-embedding.
type EmbeddingConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAICompatibleClient calls any API that speaks the OpenAI /embeddings shape.
type OpenAICompatibleClient struct {
	httpClient *http.Client
	cfg        EmbeddingConfig
}

func NewOpenAICompatibleClient(cfg EmbeddingConfig) *OpenAICompatibleClient {
	return &OpenAICompatibleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

// NewEmbedder builds the embedder selected by cfg.Provider.
func NewEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOpenAI, "":
		client := EmbeddingConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		}
		if client.BaseURL == "" {
			client.BaseURL = config.DefaultOpenAIBaseURL
		}
		if client.Model == "" {
			client.Model = config.DefaultOpenAIEmbeddingModel
		}
		return NewOpenAICompatibleClient(client), nil
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client failed: %w", err)
		}
		return NewGeminiEmbedder(client, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.Provider)
	}
}
