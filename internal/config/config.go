package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIBaseURL        = "https://api.openai.com/v1"
	DefaultOpenAIEmbeddingModel = "text-embedding-ada-002"
	DefaultGeminiEmbeddingModel = "text-embedding-004"
)

type Config struct {
	App        AppConfig        `toml:"app"`
	Database   DatabaseConfig   `toml:"database"`
	Storage    StorageConfig    `toml:"storage"`
	Embedding  EmbeddingConfig  `toml:"embedding"`
	Transcript TranscriptConfig `toml:"transcript"`
	Redis      RedisConfig      `toml:"redis"`
	RabbitMQ   RabbitMQConfig   `toml:"rabbitmq"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type DatabaseConfig struct {
	Driver string      `toml:"driver"`
	Path   string      `toml:"path"`
	MySQL  MySQLConfig `toml:"mysql"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

type StorageConfig struct {
	UploadDir string `toml:"upload_dir"`
}

type EmbeddingConfig struct {
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

// applyProviderDefaults fills base URL and model for the chosen provider
// when neither the file nor the environment set them.
func (e *EmbeddingConfig) applyProviderDefaults() {
	switch e.Provider {
	case ProviderOpenAI:
		if e.BaseURL == "" {
			e.BaseURL = DefaultOpenAIBaseURL
		}
		if e.Model == "" {
			e.Model = DefaultOpenAIEmbeddingModel
		}
	case ProviderGemini:
		if e.Model == "" {
			e.Model = DefaultGeminiEmbeddingModel
		}
	}
}

type TranscriptConfig struct {
	BaseURL string `toml:"base_url"`
}

// RedisConfig is optional; an empty Addr disables the transcript cache.
type RedisConfig struct {
	Addr                 string `toml:"addr"`
	Password             string `toml:"password"`
	DB                   int    `toml:"db"`
	TranscriptTTLSeconds int    `toml:"transcript_ttl_seconds"`
}

// RabbitMQConfig is optional; an empty URL disables resource events.
type RabbitMQConfig struct {
	URL        string `toml:"url"`
	EventQueue string `toml:"event_queue"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	// godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Embedding.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported embedding provider %q", c.Embedding.Provider)
	}
	if strings.TrimSpace(c.Storage.UploadDir) == "" {
		return fmt.Errorf("storage upload_dir is empty")
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	m := c.Database.MySQL
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		m.User,
		m.Password,
		m.Host,
		m.Port,
		m.DB,
		m.Params,
	)
}

func (c *Config) TranscriptTTL() time.Duration {
	return time.Duration(c.Redis.TranscriptTTLSeconds) * time.Second
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "resource-library",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8000,
			GinMode: "debug",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "./resources.db",
			MySQL: MySQLConfig{
				Host:   "127.0.0.1",
				Port:   3306,
				User:   "root",
				DB:     "resource_library",
				Params: "parseTime=true&loc=UTC&charset=utf8mb4",
			},
		},
		Storage: StorageConfig{
			UploadDir: "uploads",
		},
		Embedding: EmbeddingConfig{
			Provider: ProviderOpenAI,
		},
		Transcript: TranscriptConfig{
			BaseURL: "https://yt.lemnoslife.com",
		},
		Redis: RedisConfig{
			TranscriptTTLSeconds: 24 * 60 * 60,
		},
		RabbitMQ: RabbitMQConfig{
			EventQueue: "resource.events",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.MySQL.Host = getEnv("MYSQL_HOST", cfg.Database.MySQL.Host)
	cfg.Database.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.Database.MySQL.Port)
	cfg.Database.MySQL.User = getEnv("MYSQL_USER", cfg.Database.MySQL.User)
	cfg.Database.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.Database.MySQL.Password)
	cfg.Database.MySQL.DB = getEnv("MYSQL_DB", cfg.Database.MySQL.DB)
	cfg.Database.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.Database.MySQL.Params)

	cfg.Storage.UploadDir = getEnv("UPLOAD_DIR", cfg.Storage.UploadDir)

	cfg.Embedding.Provider = strings.ToLower(getEnv("EMBEDDING_PROVIDER", cfg.Embedding.Provider))
	cfg.Embedding.BaseURL = getEnv("EMBEDDING_BASE_URL", cfg.Embedding.BaseURL)
	cfg.Embedding.APIKey = getEnv("OPENAI_API_KEY", cfg.Embedding.APIKey)
	cfg.Embedding.APIKey = getEnv("EMBEDDING_API_KEY", cfg.Embedding.APIKey)
	cfg.Embedding.Model = getEnv("EMBEDDING_MODEL", cfg.Embedding.Model)
	cfg.Embedding.applyProviderDefaults()

	cfg.Transcript.BaseURL = getEnv("TRANSCRIPT_BASE_URL", cfg.Transcript.BaseURL)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TranscriptTTLSeconds = getEnvAsInt("REDIS_TRANSCRIPT_TTL_SECONDS", cfg.Redis.TranscriptTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.EventQueue = getEnv("RABBITMQ_EVENT_QUEUE", cfg.RabbitMQ.EventQueue)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
