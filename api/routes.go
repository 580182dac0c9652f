package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/timeline-api/api/health"
	"github.com/killallgit/timeline-api/api/timelines"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/api/version"
	_ "github.com/killallgit/timeline-api/docs/swagger"
)

// RegisterRoutes registers all API routes. A nil rate limiter leaves the API unthrottled.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, limiter *RateLimiter) error {
	if deps == nil || deps.Sessions == nil {
		return fmt.Errorf("timeline sessions are not configured")
	}

	// Public routes, never rate limited
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.Group("/docs").GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	timelineGroup := v1.Group("/timelines")
	if limiter != nil {
		timelineGroup.Use(limiter.Middleware())
	}
	timelines.RegisterRoutes(timelineGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
