package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE phải resolve được cả trên image không có zoneinfo
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	Flash  FlashConfig
	MinIO  MinIOConfig
	Upload UploadConfig
	Worker WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	Timezone    string // IANA name, used to decide what "today" is
	LogLevel    string
	Description string // text của trang /about/

	// AdminAPIEnabled mounts the JSON admin endpoints under /admin/api
	AdminAPIEnabled bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type FlashConfig struct {
	TTL time.Duration
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // borntoday
	UseSSL    bool   // false for local
	PublicURL string // base URL used in <img src>, e.g. http://localhost:9000
}

type UploadConfig struct {
	MaxBytes int64
}

// WorkerConfig: cmd/worker (xóa ảnh retry + dọn ảnh mồ côi)
type WorkerConfig struct {
	Concurrency    int
	SweepCron      string        // cron spec, theo APP_TIMEZONE
	OrphanMinAge   time.Duration // object mới hơn ngưỡng này có thể đang upload dở
	HealthPort     string
	DeleteMaxRetry int
}

const defaultDescription = "Borntoday.ru: дни рождения знаменитостей. " +
	"Узнайте, кто из звезд празднует сегодня, завтра и послезавтра."

// Load đọc config từ environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Borntoday"),
			Environment:     env,
			Port:            getEnv("APP_PORT", "8080"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			Timezone:        getEnv("APP_TIMEZONE", "Europe/Moscow"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			Description:     getEnv("SITE_DESCRIPTION", defaultDescription),
			AdminAPIEnabled: getEnvBool("ADMIN_API_ENABLED", env == "development"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Flash: FlashConfig{
			TTL: getEnvDuration("FLASH_TTL", 10*time.Minute),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "borntoday"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		Worker: WorkerConfig{
			Concurrency:    getEnvInt("WORKER_CONCURRENCY", 5),
			SweepCron:      getEnv("PHOTO_SWEEP_CRON", "0 3 * * *"),
			OrphanMinAge:   getEnvDuration("PHOTO_ORPHAN_MIN_AGE", 24*time.Hour),
			HealthPort:     getEnv("WORKER_HEALTH_PORT", "9999"),
			DeleteMaxRetry: getEnvInt("PHOTO_DELETE_MAX_RETRY", 5),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Flash.TTL <= 0 {
		return fmt.Errorf("FLASH_TTL must be positive")
	}
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}
	if c.Worker.OrphanMinAge < time.Hour {
		return fmt.Errorf("PHOTO_ORPHAN_MIN_AGE must be at least 1h")
	}

	if c.App.Environment == "production" {
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.MinIO.AccessKey == "minioadmin" {
			fmt.Println("WARNING: MinIO is using default credentials")
		}
	}

	return nil
}

// Location trả về *time.Location của APP_TIMEZONE (đã validate trong Load)
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
