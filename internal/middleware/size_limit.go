package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimit is a middleware that caps the request body at maxBodyBytes.
// Reads past the cap fail with http.MaxBytesError, which gin turns into
// a 413 request entity too large.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

		c.Next()
	}
}
