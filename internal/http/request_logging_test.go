package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLoggingMiddleware(t *testing.T) {
	newRouter := func(logBuf *bytes.Buffer, level slog.Level, maxBodyBytes int) *gin.Engine {
		gin.SetMode(gin.TestMode)
		logger := slog.New(slog.NewJSONHandler(logBuf, &slog.HandlerOptions{Level: level}))

		router := gin.New()
		router.Use(RequestLoggingMiddleware(logger, maxBodyBytes))
		router.GET("/health", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		router.GET("/v1/resource", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return router
	}

	t.Run("LogsRequestLine", func(t *testing.T) {
		var logBuf bytes.Buffer
		router := newRouter(&logBuf, slog.LevelInfo, 0)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/resource", nil))

		assert.Contains(t, logBuf.String(), "http request")
		assert.Contains(t, logBuf.String(), "/v1/resource")
		assert.Contains(t, logBuf.String(), `"status":200`)
	})

	t.Run("RedactsCredentialHeaders", func(t *testing.T) {
		var logBuf bytes.Buffer
		router := newRouter(&logBuf, slog.LevelInfo, 0)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/resource", nil)
		req.Header.Set("Authorization", "Bearer super-secret-token")
		req.Header.Set("Cookie", "session=super-secret-cookie")
		router.ServeHTTP(recorder, req)

		assert.Contains(t, logBuf.String(), "[REDACTED]")
		assert.NotContains(t, logBuf.String(), "super-secret-token")
		assert.NotContains(t, logBuf.String(), "super-secret-cookie")
	})

	t.Run("SkipsHealthProbes", func(t *testing.T) {
		var logBuf bytes.Buffer
		router := newRouter(&logBuf, slog.LevelInfo, 0)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, logBuf.String())
	})

	t.Run("CapturesResponseBodyAtDebugLevel", func(t *testing.T) {
		var logBuf bytes.Buffer
		router := newRouter(&logBuf, slog.LevelDebug, 4096)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/resource", nil))

		assert.Contains(t, logBuf.String(), "response_body")
		assert.Contains(t, logBuf.String(), `ok`)
		// The client still receives the full body.
		assert.JSONEq(t, `{"ok":true}`, recorder.Body.String())
	})

	t.Run("BodyCaptureTruncatesAtLimit", func(t *testing.T) {
		var logBuf bytes.Buffer
		router := newRouter(&logBuf, slog.LevelDebug, 4)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/resource", nil))

		assert.Contains(t, logBuf.String(), `"response_body":"{\"ok"`)
		assert.JSONEq(t, `{"ok":true}`, recorder.Body.String())
	})

	t.Run("NoBodyCaptureAboveDebugLevel", func(t *testing.T) {
		var logBuf bytes.Buffer
		router := newRouter(&logBuf, slog.LevelInfo, 4096)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/resource", nil))

		assert.Contains(t, logBuf.String(), "http request")
		assert.NotContains(t, logBuf.String(), "response_body")
	})
}
