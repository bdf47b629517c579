package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"borntoday/internal/config"
	"borntoday/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env chỉ dùng cho local, production đọc thẳng từ environment
	envFileErr := godotenv.Load()

	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))
	if envFileErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("env", cfg.App.Environment).
		Str("timezone", cfg.App.Timezone).
		Bool("admin_api", cfg.App.AdminAPIEnabled).
		Msg("Starting Borntoday")

	Serve(cfg)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
