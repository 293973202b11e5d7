package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resource-library/internal/ai"
	"resource-library/internal/cache"
	"resource-library/internal/config"
	"resource-library/internal/platform/database"
	rabbitmqClient "resource-library/internal/platform/rabbitmq"
	redisClient "resource-library/internal/platform/redis"
	"resource-library/internal/repository"
	"resource-library/internal/transcript"
	"resource-library/internal/worker"
)

// App owns every long-lived dependency of the server. Redis, MQConn,
// Events and EventLog are nil when their section is not configured.
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	Embedder    ai.Embedder
	Transcripts *transcript.Fetcher
	Events      *rabbitmqClient.EventPublisher
	EventLog    *worker.EventLogWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, StartedAt: time.Now()}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Redis = redisCli

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.MQConn = mqConn
	if mqConn != nil {
		app.Events = rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.EventQueue)
	}

	embedder, err := ai.NewEmbedder(ctx, cfg.Embedding)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("create embedder failed: %w", err)
	}
	app.Embedder = embedder

	var transcriptCache transcript.Cache
	if redisCli != nil {
		transcriptCache = cache.NewTranscriptCache(redisCli, cfg.TranscriptTTL())
	}
	app.Transcripts = transcript.NewFetcher(cfg.Transcript.BaseURL, transcriptCache)

	if mqConn != nil {
		eventLog := worker.NewEventLogWorker(mqConn, repository.NewEventRepository(db), cfg.RabbitMQ.EventQueue)
		if err := eventLog.Start(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("start event log worker failed: %w", err)
		}
		app.EventLog = eventLog
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.EventLog != nil {
		a.EventLog.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if err := database.Close(a.DB); err != nil {
		closeErr = err
	}
	return closeErr
}
