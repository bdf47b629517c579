package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"borntoday/pkg/container"
)

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices performs health checks and starts the health endpoint
func startServices(c *container.Container) error {
	log.Info().Msg("Borntoday worker starting...")

	if err := checkAll(workerChecks(c)); err != nil {
		return err
	}

	go startHealthCheckServer(c.Config.Worker.HealthPort)
	return nil
}

func workerChecks(c *container.Container) []healthCheck {
	return []healthCheck{
		{"Redis Connection", c.Cache.Ping},
		{"Database", c.DB.HealthCheck},
		{"Object Storage", c.Storage.Ping},
	}
}

// checkAll runs all health checks, dừng ở lỗi đầu tiên
func checkAll(checks []healthCheck) error {
	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Health check OK")
	}
	return nil
}

func healthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "borntoday-worker"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return r
}

// startHealthCheckServer starts HTTP server for health checks
func startHealthCheckServer(port string) {
	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(":"+port, healthRouter()); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
