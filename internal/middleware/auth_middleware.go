package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the shared-secret X-Proxy-Token header. It is
// applied to every endpoint except /health; auth failure always takes
// precedence over any other validation on the request.
func AuthRequired(proxyToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Proxy-Token")
		if token == "" || token != proxyToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing X-Proxy-Token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
