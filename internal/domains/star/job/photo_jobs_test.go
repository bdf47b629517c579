package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"borntoday/internal/infrastructure/queue"
	"borntoday/internal/infrastructure/storage"
)

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockPhotos) ListPhotos(ctx context.Context) ([]storage.StoredObject, error) {
	args := m.Called(ctx)
	objects, _ := args.Get(0).([]storage.StoredObject)
	return objects, args.Error(1)
}

type mockRefs struct{ mock.Mock }

func (m *mockRefs) PhotosInUse(ctx context.Context, keys []string) (map[string]bool, error) {
	args := m.Called(ctx, keys)
	inUse, _ := args.Get(0).(map[string]bool)
	return inUse, args.Error(1)
}

func TestDeletePhotoHandler(t *testing.T) {
	photos := new(mockPhotos)
	photos.On("Delete", mock.Anything, "photos/a.jpg").Return(nil)
	h := NewDeletePhotoHandler(photos)

	task, err := queue.NewDeletePhotoTask("photos/a.jpg")
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	photos.AssertExpectations(t)
}

func TestDeletePhotoHandler_StorageErrorIsRetried(t *testing.T) {
	photos := new(mockPhotos)
	photos.On("Delete", mock.Anything, "photos/a.jpg").Return(errors.New("minio down"))
	h := NewDeletePhotoHandler(photos)

	task, _ := queue.NewDeletePhotoTask("photos/a.jpg")
	err := h.ProcessTask(context.Background(), task)

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestDeletePhotoHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewDeletePhotoHandler(new(mockPhotos))

	err := h.ProcessTask(context.Background(), asynq.NewTask(queue.TypeDeletePhoto, []byte("not json")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSweep_DeletesOnlyOldUnreferencedPhotos(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	photos := new(mockPhotos)
	refs := new(mockRefs)

	photos.On("ListPhotos", mock.Anything).Return([]storage.StoredObject{
		{Key: "photos/old-used.jpg", LastModified: now.Add(-48 * time.Hour)},
		{Key: "photos/old-orphan.jpg", LastModified: now.Add(-48 * time.Hour)},
		{Key: "photos/fresh.jpg", LastModified: now.Add(-time.Minute)},
	}, nil)
	refs.On("PhotosInUse", mock.Anything, []string{"photos/old-used.jpg", "photos/old-orphan.jpg"}).
		Return(map[string]bool{"photos/old-used.jpg": true}, nil)
	photos.On("Delete", mock.Anything, "photos/old-orphan.jpg").Return(nil)

	h := NewSweepOrphanPhotosHandler(photos, refs, 24*time.Hour)
	h.now = func() time.Time { return now }

	result, err := h.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SweepResult{Scanned: 2, Deleted: 1}, result)
	photos.AssertNotCalled(t, "Delete", mock.Anything, "photos/fresh.jpg")
	photos.AssertNotCalled(t, "Delete", mock.Anything, "photos/old-used.jpg")
}

func TestSweep_DeleteFailuresReported(t *testing.T) {
	now := time.Now()
	photos := new(mockPhotos)
	refs := new(mockRefs)

	photos.On("ListPhotos", mock.Anything).Return([]storage.StoredObject{
		{Key: "photos/a.jpg", LastModified: now.Add(-72 * time.Hour)},
	}, nil)
	refs.On("PhotosInUse", mock.Anything, mock.Anything).Return(map[string]bool{}, nil)
	photos.On("Delete", mock.Anything, "photos/a.jpg").Return(errors.New("minio down"))

	h := NewSweepOrphanPhotosHandler(photos, refs, 24*time.Hour)

	err := h.ProcessTask(context.Background(), asynq.NewTask(queue.TypeSweepOrphanPhotos, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 deletions failed")
}

func TestSweep_DatabaseErrorAborts(t *testing.T) {
	photos := new(mockPhotos)
	refs := new(mockRefs)

	photos.On("ListPhotos", mock.Anything).Return([]storage.StoredObject{
		{Key: "photos/a.jpg", LastModified: time.Now().Add(-72 * time.Hour)},
	}, nil)
	refs.On("PhotosInUse", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	h := NewSweepOrphanPhotosHandler(photos, refs, 24*time.Hour)
	_, err := h.Sweep(context.Background())

	require.Error(t, err)
	photos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
