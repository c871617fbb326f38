package router

import (
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. staticDir,
// when non-empty, points at the bundled browser UI.
func New(handler *handlers.ItemHandler, staticDir string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.Default())

	api := r.Group("/api")
	api.GET("/items", handler.List)
	api.POST("/items", handler.Create)
	api.GET("/items/search", handler.Search)
	api.GET("/items/:id", handler.Get)
	api.PUT("/items/:id", handler.Update)
	api.DELETE("/items/:id", handler.Delete)
	api.POST("/items/:id/operation", handler.ApplyOperation)
	api.PUT("/items/:id/status", handler.SetStatus)
	api.GET("/reports/low-stock", handler.LowStockReport)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if staticDir != "" {
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
		r.Static("/static", staticDir)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
