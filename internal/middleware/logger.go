package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request with the [HTTP] component prefix
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		msg := fmt.Sprintf("[HTTP] %d %s %s from %s in %v",
			c.Writer.Status(), c.Request.Method, path, c.ClientIP(), time.Since(start))
		if len(c.Errors) > 0 {
			msg += " errors=" + c.Errors.String()
		}
		log.Print(msg)
	}
}
