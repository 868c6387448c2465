package http

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// redactedHeaders are request headers whose values never reach the logs.
var redactedHeaders = []string{"Authorization", "Cookie", "X-Api-Key"}

// quietPaths are probe endpoints excluded from request logging.
var quietPaths = map[string]struct{}{
	"/health": {},
	"/ready":  {},
}

// bodyCaptureWriter tees the response body into a bounded buffer while
// passing writes through to the underlying writer.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf      bytes.Buffer
	maxBytes int
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *bodyCaptureWriter) capture(data []byte) {
	remaining := w.maxBytes - w.buf.Len()
	if remaining <= 0 {
		return
	}
	if len(data) > remaining {
		data = data[:remaining]
	}
	w.buf.Write(data)
}

// RequestLoggingMiddleware logs one structured line per request with the
// correlation ID, so a client-reported instance value can be matched to the
// server logs. Credential-bearing headers are redacted and health probes are
// skipped to keep the logs useful.
//
// When the logger runs at debug level and maxBodyBytes is positive, up to
// maxBodyBytes of the response body are captured and attached to the log
// line. The capture is skipped entirely otherwise, so production traffic
// never pays for the buffering.
func RequestLoggingMiddleware(logger *slog.Logger, maxBodyBytes int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, quiet := quietPaths[c.Request.URL.Path]; quiet {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path

		captureBody := maxBodyBytes > 0 && logger.Enabled(c.Request.Context(), slog.LevelDebug)
		var capture *bodyCaptureWriter
		if captureBody {
			capture = &bodyCaptureWriter{ResponseWriter: c.Writer, maxBytes: maxBodyBytes}
			c.Writer = capture
		}

		c.Next()

		attrs := []any{
			slog.String("correlation_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("response_bytes", c.Writer.Size()),
		}
		for _, name := range redactedHeaders {
			if c.GetHeader(name) != "" {
				attrs = append(attrs, slog.String("header_"+name, "[REDACTED]"))
			}
		}
		if captureBody {
			attrs = append(attrs, slog.String("response_body", capture.buf.String()))
		}

		logger.Info("http request", attrs...)
	}
}
