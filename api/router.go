package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapeboard/api/handler"
	"github.com/use-agent/scrapeboard/api/middleware"
	"github.com/use-agent/scrapeboard/config"
	"github.com/use-agent/scrapeboard/panel"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain (global): Recovery → Logger → CORS → RateLimit.
// CORS runs globally so preflight requests succeed on every path, including
// ones gin would otherwise 404.
func NewRouter(p *panel.Panel, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.RateLimit))

	// Embedded control panel UI.
	r.GET("/", handler.UI())
	r.GET("/index.html", handler.UI())

	api := r.Group("/api")
	api.GET("/status", handler.Status(p, cfg.Server.Port, startTime))
	api.GET("/history", handler.History(p, cfg.History.DefaultTail))
	api.GET("/presets", handler.Presets())
	api.GET("/clear-history", handler.ClearHistory(p))
	api.POST("/scrape", handler.Scrape(p))
	api.POST("/batch-scrape", handler.BatchScrape(p))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
