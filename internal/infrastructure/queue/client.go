package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"borntoday/internal/config"
)

// RedisOpt: asynq dùng chung Redis với flash messages
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Client enqueue các task bảo trì ảnh từ API process
type Client struct {
	client   *asynq.Client
	maxRetry int
}

func NewClient(cfg config.RedisConfig, maxRetry int) *Client {
	return &Client{
		client:   asynq.NewClient(RedisOpt(cfg)),
		maxRetry: maxRetry,
	}
}

// EnqueuePhotoDelete đưa key vào hàng đợi để worker xóa lại (có retry + backoff)
func (c *Client) EnqueuePhotoDelete(ctx context.Context, key string) error {
	task, err := NewDeletePhotoTask(key)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueMaintenance),
		asynq.MaxRetry(c.maxRetry),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeDeletePhoto, err)
	}

	log.Info().Str("task_id", info.ID).Str("key", key).Msg("[QUEUE] Photo delete enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
