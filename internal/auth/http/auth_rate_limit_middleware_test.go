package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFailedAttemptTracker(t *testing.T) {
	t.Run("BlocksAfterMaxAttempts", func(t *testing.T) {
		tracker := newFailedAttemptTracker(15*time.Minute, 3)

		for range 3 {
			blocked, _ := tracker.blocked("10.0.0.1")
			assert.False(t, blocked)
			tracker.recordFailure("10.0.0.1")
		}

		blocked, retryAfter := tracker.blocked("10.0.0.1")
		assert.True(t, blocked)
		assert.Greater(t, retryAfter, 0)
	})

	t.Run("WindowExpiryUnblocks", func(t *testing.T) {
		tracker := newFailedAttemptTracker(15*time.Minute, 2)
		now := time.Now()
		tracker.now = func() time.Time { return now }

		tracker.recordFailure("10.0.0.1")
		tracker.recordFailure("10.0.0.1")

		blocked, _ := tracker.blocked("10.0.0.1")
		assert.True(t, blocked)

		// Advance past the window: the old attempts no longer count.
		now = now.Add(15*time.Minute + time.Second)
		blocked, _ = tracker.blocked("10.0.0.1")
		assert.False(t, blocked)

		// The pruned key is removed entirely.
		_, exists := tracker.clients.Load("10.0.0.1")
		assert.False(t, exists)
	})

	t.Run("ClientsAreIndependent", func(t *testing.T) {
		tracker := newFailedAttemptTracker(15*time.Minute, 1)
		tracker.recordFailure("10.0.0.1")

		blocked, _ := tracker.blocked("10.0.0.1")
		assert.True(t, blocked)
		blocked, _ = tracker.blocked("10.0.0.2")
		assert.False(t, blocked)
	})

	t.Run("ConcurrentFailuresAllCounted", func(t *testing.T) {
		const goroutines = 64
		tracker := newFailedAttemptTracker(15*time.Minute, goroutines)

		var wg sync.WaitGroup
		for range goroutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tracker.recordFailure("10.0.0.1")
			}()
		}
		wg.Wait()

		// Every failure must land: a lost update would leave the client
		// below the limit.
		blocked, _ := tracker.blocked("10.0.0.1")
		assert.True(t, blocked)
		blocked, _ = tracker.blocked("10.0.0.2")
		assert.False(t, blocked)
	})

	t.Run("RetryAfterShrinksOverTime", func(t *testing.T) {
		tracker := newFailedAttemptTracker(10*time.Minute, 1)
		now := time.Now()
		tracker.now = func() time.Time { return now }

		tracker.recordFailure("10.0.0.1")

		_, first := tracker.blocked("10.0.0.1")
		now = now.Add(4 * time.Minute)
		_, later := tracker.blocked("10.0.0.1")

		assert.Less(t, later, first)
	})
}

func TestAuthRateLimitMiddleware(t *testing.T) {
	newRouter := func(t *testing.T, maxAttempts int, handlerStatus int) *gin.Engine {
		router := newTestRouter(t)
		router.Use(AuthRateLimitMiddleware(15*time.Minute, maxAttempts, testErrorWriter(), testLogger()))
		router.POST("/login", func(c *gin.Context) {
			c.Status(handlerStatus)
		})
		return router
	}

	doRequest := func(router *gin.Engine) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:52000"
		router.ServeHTTP(recorder, req)
		return recorder
	}

	t.Run("BlocksAfterRepeatedFailures", func(t *testing.T) {
		router := newRouter(t, 3, http.StatusUnauthorized)

		for range 3 {
			recorder := doRequest(router)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		}

		recorder := doRequest(router)
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
		assert.Contains(t, recorder.Body.String(), "rate_limited")
	})

	t.Run("SuccessesDoNotCount", func(t *testing.T) {
		router := newRouter(t, 2, http.StatusOK)

		for range 10 {
			recorder := doRequest(router)
			assert.Equal(t, http.StatusOK, recorder.Code)
		}
	})

	t.Run("ServerErrorsDoNotCount", func(t *testing.T) {
		router := newRouter(t, 2, http.StatusInternalServerError)

		for range 10 {
			recorder := doRequest(router)
			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		}
	})

	t.Run("BlockedRequestsDoNotExtendTheBlock", func(t *testing.T) {
		router := newRouter(t, 1, http.StatusUnauthorized)

		recorder := doRequest(router)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		// Rejections while blocked must not be recorded as failures, so the
		// attempt count stays at the limit instead of growing.
		for range 5 {
			recorder = doRequest(router)
			assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		}
	})
}
