package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"resource-library/internal/config"
)

func TestOpenAICompatibleClientEmbed(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.25,-0.5,1]},{"embedding":[9]}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient(EmbeddingConfig{
		BaseURL: server.URL + "/v1/",
		APIKey:  "sk-test",
		Model:   "text-embedding-ada-002",
	})

	vec, err := client.Embed(context.Background(), "  report\nnotes\nbody  ")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 1}, vec, "first vector is returned")
	assert.Equal(t, "text-embedding-ada-002", gotBody["model"])
	assert.Equal(t, "report\nnotes\nbody", gotBody["input"])
}

func TestOpenAICompatibleClientEmbedErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad key"}`},
		{name: "malformed body", status: http.StatusOK, body: `{"data":`},
		{name: "no data", status: http.StatusOK, body: `{"data":[]}`},
		{name: "empty vector", status: http.StatusOK, body: `{"data":[{"embedding":[]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewOpenAICompatibleClient(EmbeddingConfig{BaseURL: server.URL, APIKey: "k", Model: "m"})
			_, err := client.Embed(context.Background(), "text")
			assert.Error(t, err)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		client := NewOpenAICompatibleClient(EmbeddingConfig{BaseURL: "http://127.0.0.1:0", APIKey: "k"})
		_, err := client.Embed(context.Background(), "   ")
		assert.Error(t, err)
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewOpenAICompatibleClient(EmbeddingConfig{BaseURL: "http://127.0.0.1:0"})
		_, err := client.Embed(context.Background(), "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key")
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := NewOpenAICompatibleClient(EmbeddingConfig{BaseURL: url, APIKey: "k"})
		_, err := client.Embed(context.Background(), "text")
		assert.Error(t, err)
	})
}

type fakeGeminiModels struct {
	model string
	text  string
	resp  *genai.EmbedContentResponse
	err   error
}

func (f *fakeGeminiModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.text = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func TestGeminiEmbedder(t *testing.T) {
	t.Run("returns first embedding", func(t *testing.T) {
		models := &fakeGeminiModels{resp: &genai.EmbedContentResponse{
			Embeddings: []*genai.ContentEmbedding{{Values: []float32{1, 2}}, {Values: []float32{3}}},
		}}
		embedder := newGeminiEmbedder(models, "")

		vec, err := embedder.Embed(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, vec)
		assert.Equal(t, config.DefaultGeminiEmbeddingModel, models.model)
		assert.Equal(t, "hello", models.text)
	})

	t.Run("api error", func(t *testing.T) {
		embedder := newGeminiEmbedder(&fakeGeminiModels{err: errors.New("quota")}, "m")
		_, err := embedder.Embed(context.Background(), "hello")
		assert.Error(t, err)
	})

	t.Run("empty response", func(t *testing.T) {
		embedder := newGeminiEmbedder(&fakeGeminiModels{resp: &genai.EmbedContentResponse{}}, "m")
		_, err := embedder.Embed(context.Background(), "hello")
		assert.Error(t, err)
	})
}

func TestNewEmbedder(t *testing.T) {
	embedder, err := NewEmbedder(context.Background(), config.EmbeddingConfig{
		Provider: config.ProviderOpenAI,
		BaseURL:  "https://api.openai.com/v1",
		APIKey:   "k",
		Model:    "text-embedding-ada-002",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAICompatibleClient{}, embedder)

	_, err = NewEmbedder(context.Background(), config.EmbeddingConfig{Provider: "cohere"})
	assert.Error(t, err)
}

func TestNewEmbedderProviderDefaults(t *testing.T) {
	t.Run("gemini with default config", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
		t.Setenv("EMBEDDING_PROVIDER", config.ProviderGemini)
		t.Setenv("EMBEDDING_API_KEY", "k")
		cfg, err := config.Load()
		require.NoError(t, err)

		embedder, err := NewEmbedder(context.Background(), cfg.Embedding)
		require.NoError(t, err)
		gemini, ok := embedder.(*GeminiEmbedder)
		require.True(t, ok)
		assert.Equal(t, config.DefaultGeminiEmbeddingModel, gemini.model)
	})

	t.Run("openai with empty settings", func(t *testing.T) {
		embedder, err := NewEmbedder(context.Background(), config.EmbeddingConfig{APIKey: "k"})
		require.NoError(t, err)
		client, ok := embedder.(*OpenAICompatibleClient)
		require.True(t, ok)
		assert.Equal(t, config.DefaultOpenAIEmbeddingModel, client.cfg.Model)
		assert.Equal(t, config.DefaultOpenAIBaseURL, client.cfg.BaseURL)
	})
}
