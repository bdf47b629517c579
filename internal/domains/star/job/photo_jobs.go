package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"borntoday/internal/infrastructure/queue"
	"borntoday/internal/infrastructure/storage"
)

// số key mỗi lần hỏi DB (ANY($1))
const sweepBatchSize = 500

type PhotoDeleter interface {
	Delete(ctx context.Context, key string) error
}

type PhotoLister interface {
	PhotoDeleter
	ListPhotos(ctx context.Context) ([]storage.StoredObject, error)
}

type PhotoReferences interface {
	PhotosInUse(ctx context.Context, keys []string) (map[string]bool, error)
}

// ============================================================
// photo:delete
// ============================================================

// DeletePhotoHandler xóa lại object khi lần xóa inline (lúc xóa star) thất bại
type DeletePhotoHandler struct {
	photos PhotoDeleter
}

func NewDeletePhotoHandler(photos PhotoDeleter) *DeletePhotoHandler {
	return &DeletePhotoHandler{photos: photos}
}

func (h *DeletePhotoHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseDeletePhotoPayload(task)
	if err != nil {
		log.Error().Err(err).Msg("Invalid DeletePhoto payload")
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if err := h.photos.Delete(ctx, payload.Key); err != nil {
		log.Warn().Err(err).Str("key", payload.Key).Msg("Failed to delete photo, will retry")
		return fmt.Errorf("delete photo: %w", err)
	}

	log.Info().Str("key", payload.Key).Msg("Photo deleted")
	return nil
}

// ============================================================
// photo:sweep_orphans
// ============================================================

// SweepOrphanPhotosHandler xóa object dưới photos/ không còn star nào tham chiếu.
// Chỉ xét object cũ hơn minAge để không đụng vào ảnh đang upload dở.
type SweepOrphanPhotosHandler struct {
	photos PhotoLister
	refs   PhotoReferences
	minAge time.Duration
	now    func() time.Time
}

func NewSweepOrphanPhotosHandler(photos PhotoLister, refs PhotoReferences, minAge time.Duration) *SweepOrphanPhotosHandler {
	return &SweepOrphanPhotosHandler{
		photos: photos,
		refs:   refs,
		minAge: minAge,
		now:    time.Now,
	}
}

// SweepResult: thống kê của một lần sweep
type SweepResult struct {
	Scanned int
	Deleted int
	Failed  int
}

func (h *SweepOrphanPhotosHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	result, err := h.Sweep(ctx)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("sweep orphan photos: %d deletions failed", result.Failed)
	}
	return nil
}

func (h *SweepOrphanPhotosHandler) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	objects, err := h.photos.ListPhotos(ctx)
	if err != nil {
		return result, err
	}

	cutoff := h.now().Add(-h.minAge)
	candidates := make([]string, 0, len(objects))
	for _, obj := range objects {
		if obj.LastModified.Before(cutoff) {
			candidates = append(candidates, obj.Key)
		}
	}
	result.Scanned = len(candidates)

	for start := 0; start < len(candidates); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(candidates))
		batch := candidates[start:end]

		inUse, err := h.refs.PhotosInUse(ctx, batch)
		if err != nil {
			return result, err
		}

		for _, key := range batch {
			if inUse[key] {
				continue
			}
			if err := h.photos.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Failed to delete orphan photo")
				result.Failed++
				continue
			}
			result.Deleted++
		}
	}

	log.Info().
		Int("scanned", result.Scanned).
		Int("deleted", result.Deleted).
		Int("failed", result.Failed).
		Msg("Orphan photo sweep finished")
	return result, nil
}
