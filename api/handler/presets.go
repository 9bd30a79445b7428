package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapeboard/models"
)

// Presets returns the handler for GET /api/presets.
func Presets() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.PresetsResponse{
			Presets: models.BuiltinPresets(),
		})
	}
}
