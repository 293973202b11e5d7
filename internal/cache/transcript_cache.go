package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// TranscriptCache keeps fetched video transcripts in Redis.
type TranscriptCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewTranscriptCache(client *redisv9.Client, ttl time.Duration) *TranscriptCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranscriptCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *TranscriptCache) GetTranscript(ctx context.Context, videoID string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(videoID)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get transcript failed: %w", err)
	}
	return raw, true, nil
}

func (c *TranscriptCache) SetTranscript(ctx context.Context, videoID, transcript string) error {
	if err := c.client.Set(ctx, c.key(videoID), transcript, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set transcript failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) key(videoID string) string {
	return fmt.Sprintf("transcript:youtube:%s", videoID)
}
