package queue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

// Queue names
const (
	QueueMaintenance = "maintenance"
)

// Task types
const (
	TypeDeletePhoto       = "photo:delete"
	TypeSweepOrphanPhotos = "photo:sweep_orphans"
)

var ErrEmptyPhotoKey = errors.New("photo key is empty")

// DeletePhotoPayload: retry xóa object khi xóa inline thất bại
type DeletePhotoPayload struct {
	Key string `json:"key"`
}

func NewDeletePhotoTask(key string) (*asynq.Task, error) {
	if key == "" {
		return nil, ErrEmptyPhotoKey
	}
	payload, err := json.Marshal(DeletePhotoPayload{Key: key})
	if err != nil {
		return nil, fmt.Errorf("marshal delete photo payload: %w", err)
	}
	return asynq.NewTask(TypeDeletePhoto, payload), nil
}

func ParseDeletePhotoPayload(task *asynq.Task) (DeletePhotoPayload, error) {
	var p DeletePhotoPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("unmarshal delete photo payload: %w", err)
	}
	if p.Key == "" {
		return p, ErrEmptyPhotoKey
	}
	return p, nil
}
