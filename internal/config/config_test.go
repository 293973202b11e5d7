package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./resources.db", cfg.Database.Path)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, DefaultOpenAIEmbeddingModel, cfg.Embedding.Model)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.Embedding.BaseURL)
	assert.Equal(t, "https://yt.lemnoslife.com", cfg.Transcript.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TranscriptTTL())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
port = 9090

[database]
driver = "mysql"

[database.mysql]
host = "db.internal"
user = "library"
password = "secret"
db = "library"
params = "parseTime=true"

[storage]
upload_dir = "/var/lib/library/uploads"

[embedding]
model = "text-embedding-3-small"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7070")
	t.Setenv("EMBEDDING_API_KEY", "sk-test")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.App.Port, "env should win over the file")
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "library:secret@tcp(db.internal:3306)/library?parseTime=true", cfg.MySQLDSN())
	assert.Equal(t, "/var/lib/library/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestLoadGeminiProviderDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("EMBEDDING_PROVIDER", "Gemini")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.Embedding.Provider)
	assert.Equal(t, DefaultGeminiEmbeddingModel, cfg.Embedding.Model)
	assert.Empty(t, cfg.Embedding.BaseURL)

	t.Run("explicit model wins", func(t *testing.T) {
		t.Setenv("EMBEDDING_MODEL", "gemini-embedding-001")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "gemini-embedding-001", cfg.Embedding.Model)
	})
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestValidate(t *testing.T) {
	t.Run("unknown embedding provider", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Embedding.Provider = "cohere"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty upload dir", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Storage.UploadDir = "  "
		assert.Error(t, cfg.Validate())
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, defaultConfig().Validate())
	})
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("LIBRARY_TEST_INT", "not-a-number")
	assert.Equal(t, 5, getEnvAsInt("LIBRARY_TEST_INT", 5))

	t.Setenv("LIBRARY_TEST_INT", "12")
	assert.Equal(t, 12, getEnvAsInt("LIBRARY_TEST_INT", 5))
}
