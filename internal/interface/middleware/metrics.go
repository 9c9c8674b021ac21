package middleware

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	httpRequests = expvar.NewMap("http_requests_by_status")
	httpTotal    = expvar.NewInt("http_requests_total")
)

// Metrics counts handled requests by status code; exposed at /api/debug/vars.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		httpTotal.Add(1)
		httpRequests.Add(strconv.Itoa(c.Writer.Status()), 1)
	}
}
