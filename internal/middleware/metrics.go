package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/member_search/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics returns a middleware that records every request with recorder.
// Requests are labelled by route template to keep label cardinality bounded.
func Metrics(recorder metrics.HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
