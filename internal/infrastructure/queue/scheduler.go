package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"borntoday/internal/config"
	"borntoday/pkg/logger"
)

// Scheduler đăng ký các job định kỳ (cron) của worker
type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redis config.RedisConfig, worker config.WorkerConfig, loc *time.Location) *Scheduler {
	scheduler := asynq.NewScheduler(
		RedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: loc,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       worker,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerSweepOrphanPhotosJob()
}

// ================================================
// Sweep Orphan Photos (mặc định 3h sáng mỗi ngày)
// ================================================
// Ảnh không còn star nào tham chiếu: xóa inline thất bại
// và retry cũng hết lượt, hoặc process chết giữa upload và insert.
func (s *Scheduler) registerSweepOrphanPhotosJob() error {
	task := asynq.NewTask(TypeSweepOrphanPhotos, nil)

	_, err := s.scheduler.Register(
		s.cfg.SweepCron,
		task,
		asynq.Queue(QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
		asynq.Unique(time.Hour),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanPhotos job", err)
		return fmt.Errorf("register %s: %w", TypeSweepOrphanPhotos, err)
	}

	logger.Info("Registered SweepOrphanPhotos", map[string]interface{}{"cron": s.cfg.SweepCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
