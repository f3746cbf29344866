package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets the hardening headers. Paths under publicPrefix are embedded by
// the frontend from another origin, so they are marked cross-origin readable.
func SecurityHeadersMiddleware(publicPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()

		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if publicPrefix != "" && strings.HasPrefix(c.Request.URL.Path, publicPrefix+"/") {
			headers.Set("Cross-Origin-Resource-Policy", "cross-origin")
		} else {
			headers.Set("Cross-Origin-Resource-Policy", "same-origin")
		}

		c.Next()
	}
}
