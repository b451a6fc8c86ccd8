package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue_AddsReadyJob(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	defer client.Close()

	producer := NewProducer(client)
	ctx := context.Background()

	job := Job{
		ID:        "job-1",
		Type:      JobTypeRoomArchive,
		Payload:   MustMarshal(map[string]string{"token": "tok-1"}),
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(time.Hour).Unix(),
	}

	require.NoError(t, producer.Enqueue(ctx, job))

	members, err := client.ZRangeByScore(ctx, QueueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}).Result()
	require.NoError(t, err)
	require.Len(t, members, 1)

	var got Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &got))
	assert.Equal(t, "job-1", got.ID)
	assert.Equal(t, JobTypeRoomArchive, got.Type)

	score, err := client.ZScore(ctx, QueueKey, members[0]).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, score, float64(time.Now().Unix()), "new jobs must be ready immediately")
}
