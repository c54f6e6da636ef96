package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"cofflyze-api/internal/model"
)

const (
	historyKey    = "predict:history"
	generationKey = "predict:history:gen"
)

// PredictionCache keeps the GET /predict listing in Redis until the next
// insert invalidates it. Every invalidation bumps a generation counter, and
// a listing is only written back if the generation it was read under is
// still current.
type PredictionCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPredictionCache(client *redisv9.Client, ttl time.Duration) *PredictionCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PredictionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PredictionCache) GetHistory(ctx context.Context) ([]model.Prediction, bool, error) {
	raw, err := c.client.Get(ctx, historyKey).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get history failed: %w", err)
	}

	var predictions []model.Prediction
	if err := json.Unmarshal([]byte(raw), &predictions); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached history failed: %w", err)
	}
	return predictions, true, nil
}

// Generation returns the current invalidation counter, 0 before the first
// insert.
func (c *PredictionCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redisv9.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get history generation failed: %w", err)
	}
	return gen, nil
}

// SetHistory caches predictions if no invalidation happened since
// generation was read. It reports whether the entry was written.
func (c *PredictionCache) SetHistory(ctx context.Context, generation int64, predictions []model.Prediction) (bool, error) {
	payload, err := json.Marshal(predictions)
	if err != nil {
		return false, fmt.Errorf("marshal history cache failed: %w", err)
	}

	written := false
	err = c.client.Watch(ctx, func(tx *redisv9.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redisv9.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
			pipe.Set(ctx, historyKey, payload, c.ttl)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}, generationKey)
	if errors.Is(err, redisv9.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set history failed: %w", err)
	}
	return written, nil
}

func (c *PredictionCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, historyKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate history failed: %w", err)
	}
	return nil
}
