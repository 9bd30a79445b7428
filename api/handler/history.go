package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapeboard/models"
	"github.com/use-agent/scrapeboard/panel"
)

// History returns the handler for GET /api/history?limit=N. A missing or
// unparseable limit falls back to defaultTail.
func History(p *panel.Panel, defaultTail int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultTail
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		c.JSON(http.StatusOK, models.HistoryResponse{
			History: p.History().Tail(limit),
			Total:   p.History().Len(),
		})
	}
}

// ClearHistory returns the handler for GET /api/clear-history.
func ClearHistory(p *panel.Panel) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.History().Clear()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "history cleared",
		})
	}
}
