package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"filingdesk/internal/model"
)

const progressTTL = 10 * time.Minute

// ProgressCache holds the last computed progress snapshot per session so
// dashboard polling does not re-run the engine
type ProgressCache interface {
	Set(ctx context.Context, sessionID string, progress *model.Progress) error
	Get(ctx context.Context, sessionID string) (*model.Progress, error)
}

type progressCache struct {
	client *redis.Client
}

// NewProgressCache creates a new progress cache
func NewProgressCache(client *redis.Client) ProgressCache {
	return &progressCache{
		client: client,
	}
}

func (c *progressCache) Set(ctx context.Context, sessionID string, progress *model.Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "progress:"+sessionID, data, progressTTL).Err()
}

func (c *progressCache) Get(ctx context.Context, sessionID string) (*model.Progress, error) {
	data, err := c.client.Get(ctx, "progress:"+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var progress model.Progress
	err = json.Unmarshal([]byte(data), &progress)
	return &progress, err
}
