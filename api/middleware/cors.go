package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS marks every response as cross-origin readable and short-circuits
// preflight requests. The panel binds to localhost, so an open policy is the
// point: any local tool or page may call the API.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
