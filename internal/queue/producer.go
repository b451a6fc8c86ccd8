package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, job Job) error
}

type RedisProducer struct {
	Redis *redis.Client
}

func NewProducer(redis *redis.Client) Producer {
	return &RedisProducer{Redis: redis}
}

// Enqueue adds the job to the sorted-set queue. The score is the
// ready-at time in unix seconds; the worker pops everything with a
// score <= now, so new jobs are eligible immediately and retries are
// parked in the future.
func (p *RedisProducer) Enqueue(ctx context.Context, job Job) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.Redis.ZAdd(ctx, QueueKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: jobBytes,
	}).Err()
}
