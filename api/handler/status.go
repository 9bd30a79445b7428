package handler

import (
	"math"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapeboard/models"
	"github.com/use-agent/scrapeboard/panel"
)

// Status returns the handler for GET /api/status. The snapshot is recomputed
// on every request since availability can change while the server runs (e.g.
// Chromium installed after startup).
func Status(p *panel.Panel, port int, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg := p.Fetchers()

		c.JSON(http.StatusOK, models.StatusResponse{
			Server:        "running",
			Port:          port,
			UptimeSeconds: math.Round(time.Since(startTime).Seconds()*10) / 10,
			Engines: models.EngineStatus{
				Fetcher:           reg.Available(models.FetcherBasic),
				StealthyFetcher:   reg.Available(models.FetcherStealthy),
				PlaywrightFetcher: reg.Available(models.FetcherPlaywright),
				MCPServer:         mcpOnPath(),
				Version:           models.Version,
			},
			HistoryCount: p.History().Len(),
			GoVersion:    strings.TrimPrefix(runtime.Version(), "go"),
		})
	}
}

// mcpOnPath reports whether the companion MCP binary is installed.
func mcpOnPath() bool {
	_, err := exec.LookPath("scrapeboard-mcp")
	return err == nil
}
