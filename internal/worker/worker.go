package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/xenn00/livestream-service/internal/entity"
	"github.com/xenn00/livestream-service/internal/queue"
	archive_repo "github.com/xenn00/livestream-service/internal/repo/archive"
)

// WorkerPool drains the archive queue and persists room snapshots. It is
// fully decoupled from the live store: archive failures are retried with
// backoff and eventually parked in the DLQ, never surfaced to clients.
type WorkerPool struct {
	Redis      *redis.Client
	Archive    archive_repo.ArchiveRepoContract
	WorkerNum  int
	JobChannel chan string
	wg         sync.WaitGroup
}

func NewWorkerPool(redis *redis.Client, archive archive_repo.ArchiveRepoContract, workerNum int) *WorkerPool {
	return &WorkerPool{
		Redis:      redis,
		Archive:    archive,
		WorkerNum:  workerNum,
		JobChannel: make(chan string, 100),
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	log.Info().Msgf("Starting archive worker pool with %d workers", wp.WorkerNum)

	for i := 0; i < wp.WorkerNum; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}

	go func() {
		defer close(wp.JobChannel)
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping archive worker pool")
				return
			default:
				now := float64(time.Now().Unix())
				result, err := wp.Redis.ZRangeByScore(ctx, queue.QueueKey, &redis.ZRangeBy{
					Min:    "-inf",
					Max:    fmt.Sprintf("%f", now),
					Offset: 0,
					Count:  1,
				}).Result()

				if err != nil {
					if err != redis.Nil && ctx.Err() == nil {
						log.Error().Err(err).Msg("Worker: failed to pop job")
					}
					time.Sleep(500 * time.Millisecond)
					continue
				}

				if len(result) == 0 {
					time.Sleep(500 * time.Millisecond)
					continue
				}

				payload := result[0]
				wp.Redis.ZRem(ctx, queue.QueueKey, payload)
				select {
				case wp.JobChannel <- payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log.Info().Msgf("Archive worker %d started", id)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("Archive worker %d stopping", id)
			return
		case payload, ok := <-wp.JobChannel:
			if !ok {
				return
			}

			var job queue.Job
			if err := json.Unmarshal([]byte(payload), &job); err != nil {
				log.Warn().Err(err).Msgf("Worker %d: Failed to unmarshal job payload", id)
				continue
			}
			if err := wp.handleJob(ctx, job); err != nil {
				wp.retryOrPark(ctx, job, err)
			}
		}
	}
}

func (wp *WorkerPool) handleJob(ctx context.Context, job queue.Job) error {
	switch job.Type {
	case queue.JobTypeRoomArchive:
		var room entity.Room
		if err := json.Unmarshal(job.Payload, &room); err != nil {
			return fmt.Errorf("invalid room payload: %w", err)
		}
		if aerr := wp.Archive.Upsert(ctx, &room); aerr != nil {
			return aerr
		}
		log.Debug().Str("roomToken", room.Token).Str("status", room.Status).Msg("room snapshot archived")
		return nil
	default:
		log.Warn().Str("job_id", job.ID).Str("type", job.Type).Msg("unknown job type, dropping")
		return nil
	}
}

func (wp *WorkerPool) retryOrPark(ctx context.Context, job queue.Job, cause error) {
	job.Retry++
	job.ErrorMsg = cause.Error()

	now := time.Now().Unix()
	if job.Retry >= job.MaxRetry || now > job.ExpireAt {
		log.Error().Str("job_id", job.ID).Str("error", job.ErrorMsg).Msg("Job moved to DLQ")
		dlqBytes, _ := json.Marshal(job)
		wp.Redis.RPush(ctx, queue.DLQKey, dlqBytes)
		return
	}

	// exponential backoff
	delay := time.Duration(5*(1<<job.Retry)) * time.Second
	retryAt := time.Now().Add(delay).Unix()

	jobBytes, _ := json.Marshal(job)
	wp.Redis.ZAdd(ctx, queue.QueueKey, redis.Z{
		Score:  float64(retryAt),
		Member: jobBytes,
	})
	log.Warn().Str("job_id", job.ID).Msgf("Retrying in %v seconds (%d/%d)", delay.Seconds(), job.Retry, job.MaxRetry)
}

func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
	log.Info().Msg("All archive workers have stopped")
}
