package main

import (
	"github.com/hibiken/asynq"

	starJob "borntoday/internal/domains/star/job"
	"borntoday/internal/infrastructure/queue"
	"borntoday/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deletePhoto  *starJob.DeletePhotoHandler
	sweepOrphans *starJob.SweepOrphanPhotosHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deletePhoto:  starJob.NewDeletePhotoHandler(c.Storage),
		sweepOrphans: starJob.NewSweepOrphanPhotosHandler(c.Storage, c.StarRepo, c.Config.Worker.OrphanMinAge),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeDeletePhoto, h.deletePhoto.ProcessTask)
	mux.HandleFunc(queue.TypeSweepOrphanPhotos, h.sweepOrphans.ProcessTask)
}
