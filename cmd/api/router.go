package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"borntoday/internal/shared/middleware"
	"borntoday/internal/shared/response"
	"borntoday/internal/web"
	"borntoday/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HTMLRender = c.Renderer
	router.MaxMultipartMemory = c.Config.Upload.MaxBytes

	// Global middlewares (Recovery nằm trong Logger để log được status 500)
	router.Use(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.Recovery(web.ServerErrorPage),
	)

	router.GET("/health", healthCheckHandler(c))

	setupPageRoutes(router, c)
	if c.Config.App.AdminAPIEnabled {
		setupAdminRoutes(router, c)
	}

	router.NoRoute(notFoundHandler(c))
	return router
}

// ========================================
// PUBLIC PAGES
// ========================================
func setupPageRoutes(router *gin.Engine, c *container.Container) {
	h := c.StarHandler

	router.GET("/", h.Index)
	router.GET("/about/", h.About)
	router.GET("/add/", h.AddForm)
	router.POST("/add/", h.Add)
	router.GET("/person/:slug/", h.Detail)
	router.GET("/country/:slug/", h.Country)
	router.GET("/industry/:slug/", h.Industry)
	router.GET("/sitemap/", h.Sitemap)
	router.GET("/sitemap/:letter/", h.SitemapLetter)

	star := router.Group("/star/:id")
	{
		star.GET("/delete/", h.DeleteConfirm)
		star.POST("/delete/", h.Delete)
	}
}

// ========================================
// ADMIN JSON API
// ========================================
func setupAdminRoutes(router *gin.Engine, c *container.Container) {
	admin := router.Group("/admin/api")
	admin.Use(middleware.AdminAPI())

	countries := admin.Group("/countries")
	{
		countries.GET("", c.CountryHandler.List)
		countries.POST("", c.CountryHandler.Create)
		countries.PUT("/:id", c.CountryHandler.Update)
		countries.DELETE("/:id", c.CountryHandler.Delete)
	}

	categories := admin.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.POST("", c.CategoryHandler.Create)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}

	stars := admin.Group("/stars")
	{
		stars.GET("", c.StarAdminHandler.List)
		stars.GET("/:id", c.StarAdminHandler.Get)
		stars.PUT("/:id", c.StarAdminHandler.Update)
		stars.PATCH("/:id/publish", c.StarAdminHandler.SetPublished)
	}
}

// notFoundHandler: JSON cho /admin/api/*, trang 404 cho phần còn lại
func notFoundHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if middleware.IsJSONRequest(ctx) {
			response.NotFound(ctx, "Route not found")
			return
		}
		c.Pages.NotFound(ctx)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		} else {
			health["pool"] = appCtx.DB.Stats()
		}

		// Check redis (flash messages only, không làm site degraded)
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		// Check object storage
		storageStatus := "ok"
		if appCtx.Storage == nil {
			storageStatus = "disconnected"
		} else if err := appCtx.Storage.Ping(ctx); err != nil {
			storageStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
