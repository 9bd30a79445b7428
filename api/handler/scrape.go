package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapeboard/models"
	"github.com/use-agent/scrapeboard/panel"
)

// Scrape returns the handler for POST /api/scrape.
//
// Client errors (bad JSON, missing url) get a 400 with an error body. Once a
// request reaches the panel, the response is always a 200 ScrapeResult:
// scrape failures live in its error field, never in the HTTP status.
func Scrape(p *panel.Panel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		c.JSON(http.StatusOK, p.Run(c.Request.Context(), &req))
	}
}

// BatchScrape returns the handler for POST /api/batch-scrape. An empty URL
// list is not an error; it yields an empty result list.
func BatchScrape(p *panel.Panel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.BatchResponse{
			Results: p.RunBatch(c.Request.Context(), &req),
		})
	}
}
