package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip request bodies so the handlers always see
// plain payloads. Requests without a gzip Content-Encoding pass through.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(strings.ToLower(encoding), "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		zr, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer zr.Close()
		defer body.Close()

		c.Request.Body = io.NopCloser(zr)
		c.Request.Header.Del("Content-Encoding")
		// Decompressed length is unknown.
		c.Request.ContentLength = -1
		c.Next()
	}
}
