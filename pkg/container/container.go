package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"borntoday/internal/config"
	infraCache "borntoday/internal/infrastructure/cache"
	"borntoday/internal/infrastructure/database"
	"borntoday/internal/infrastructure/queue"
	"borntoday/internal/infrastructure/storage"
	"borntoday/internal/shared/flash"
	"borntoday/internal/web"
	"borntoday/pkg/cache"

	categoryHandler "borntoday/internal/domains/category/handler"
	categoryRepo "borntoday/internal/domains/category/repository"
	categoryService "borntoday/internal/domains/category/service"
	countryHandler "borntoday/internal/domains/country/handler"
	countryRepo "borntoday/internal/domains/country/repository"
	countryService "borntoday/internal/domains/country/service"
	starHandler "borntoday/internal/domains/star/handler"
	starRepo "borntoday/internal/domains/star/repository"
	starService "borntoday/internal/domains/star/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application (root của dependency graph)
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage *storage.MinIOStorage
	Images  *storage.ImageProcessor
	Queue   *queue.Client

	redis *infraCache.RedisCache

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CountryRepo  countryRepo.Repository
	CategoryRepo categoryRepo.Repository
	StarRepo     starRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	CountryService  countryService.Service
	CategoryService categoryService.Service
	StarService     starService.Service

	// ========================================
	// WEB LAYER
	// ========================================
	Flash    *flash.Store
	Pages    *web.PageBuilder
	Renderer *web.Renderer

	// ========================================
	// HANDLER LAYER
	// ========================================
	CountryHandler   *countryHandler.Handler
	CategoryHandler  *categoryHandler.Handler
	StarHandler      *starHandler.Handler
	StarAdminHandler *starHandler.AdminHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo toàn bộ dependency graph.
// Thứ tự: Config → Infrastructure → Repositories → Services → Web → Handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container...")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initWeb(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// STEP 1: INFRASTRUCTURE
// ========================================

func (c *Container) initInfrastructure() error {
	// PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if err := database.RunMigrations(dbConfig); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// Redis (flash messages)
	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// flash chỉ là tiện ích, site vẫn chạy được khi Redis chưa sẵn sàng
		log.Warn().Err(err).Msg("Redis unavailable, flash messages will be dropped")
	}
	c.redis = redisCache
	c.Cache = redisCache

	// MinIO (ảnh ngôi sao)
	minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to initialize minio: %w", err)
	}
	c.Storage = minioStorage
	c.Images = storage.NewImageProcessor(c.Config.Upload.MaxBytes)

	// asynq client: xóa ảnh thất bại được chuyển cho cmd/worker
	c.Queue = queue.NewClient(c.Config.Redis, c.Config.Worker.DeleteMaxRetry)

	log.Info().Msg("Infrastructure ready")
	return nil
}

// ========================================
// STEP 2: REPOSITORIES
// ========================================

func (c *Container) initRepositories() {
	c.CountryRepo = countryRepo.NewRepository(c.DB.Pool)
	c.CategoryRepo = categoryRepo.NewRepository(c.DB.Pool)
	c.StarRepo = starRepo.NewRepository(c.DB.Pool)
}

// ========================================
// STEP 3: SERVICES
// ========================================

func (c *Container) initServices() {
	c.CountryService = countryService.NewService(c.CountryRepo)
	c.CategoryService = categoryService.NewService(c.CategoryRepo)
	c.StarService = starService.NewService(
		c.StarRepo,
		c.CountryService,
		c.CategoryService,
		c.Storage,
		c.Images,
		c.Queue,
		c.Config.Location(),
	)
}

// ========================================
// STEP 4: WEB (templates, sidebar, flash)
// ========================================

func (c *Container) initWeb() error {
	renderer, err := web.NewRenderer(web.Funcs(c.Storage.URL))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	c.Renderer = renderer

	c.Flash = flash.NewStore(c.Cache, c.Config.Flash.TTL)
	c.Pages = web.NewPageBuilder(c.CountryService, c.CategoryService, c.Flash, c.StarService.Today)
	return nil
}

// ========================================
// STEP 5: HANDLERS
// ========================================

func (c *Container) initHandlers() {
	c.CountryHandler = countryHandler.NewHandler(c.CountryService)
	c.CategoryHandler = categoryHandler.NewHandler(c.CategoryService)
	c.StarHandler = starHandler.NewHandler(
		c.StarService,
		c.Pages,
		c.Flash,
		c.Config.Upload.MaxBytes,
		c.Config.App.Description,
	)
	c.StarAdminHandler = starHandler.NewAdminHandler(c.StarService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup đóng các connection (gọi khi shutdown)
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing queue client")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing redis")
		}
	}
}
