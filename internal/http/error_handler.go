package http

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/polishfootballnetwork/api/internal/httputil"
)

// ErrorHandlerMiddleware is the terminal exception normalizer: it recovers
// panics and converts any error attached to the gin context into the
// structured error body. Handlers that already wrote an error response are
// left alone.
//
// Every failure leaving the API goes through httputil.ErrorWriter, so clients
// always see {title, status, detail, instance, timestamp} regardless of where
// the failure originated.
func ErrorHandlerMiddleware(errorWriter *httputil.ErrorWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				errorWriter.WritePanic(c, recovered, debug.Stack())
				c.Abort()
			}
		}()

		c.Next()

		// Errors attached via c.Error() without a response written yet.
		if len(c.Errors) > 0 && !c.Writer.Written() {
			errorWriter.WriteError(c, c.Errors.Last().Err)
		}
	}
}
