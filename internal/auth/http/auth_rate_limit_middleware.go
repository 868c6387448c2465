package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polishfootballnetwork/api/internal/httputil"
)

// failedAttemptTracker counts failed authentication attempts per client over
// a sliding window. Clients map to independent entries with per-entry locking,
// so concurrent authentication traffic from different clients never contends
// on a shared lock. Entries older than the window are pruned on every check,
// so traffic drives cleanup and memory stays bounded by the active client set.
type failedAttemptTracker struct {
	clients     sync.Map // map[string]*clientAttempts keyed by client IP
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

// clientAttempts holds one client's failed-attempt timestamps. The gone flag
// marks entries removed from the map, so a writer racing the removal re-loads
// a fresh entry instead of appending to an orphaned one.
type clientAttempts struct {
	mu       sync.Mutex
	attempts []time.Time
	gone     bool
}

func newFailedAttemptTracker(window time.Duration, maxAttempts int) *failedAttemptTracker {
	return &failedAttemptTracker{
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// blocked reports whether the client has exhausted its failed attempts and,
// if so, how many seconds until the oldest attempt leaves the window.
func (t *failedAttemptTracker) blocked(key string) (bool, int) {
	val, ok := t.clients.Load(key)
	if !ok {
		return false, 0
	}
	entry := val.(*clientAttempts)
	now := t.now()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.gone {
		return false, 0
	}

	entry.prune(now.Add(-t.window))
	if len(entry.attempts) == 0 {
		entry.gone = true
		t.clients.Delete(key)
		return false, 0
	}
	if len(entry.attempts) < t.maxAttempts {
		return false, 0
	}

	retryAfter := int(t.window.Seconds() - now.Sub(entry.attempts[0]).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	return true, retryAfter
}

// recordFailure adds a failed attempt for the client.
func (t *failedAttemptTracker) recordFailure(key string) {
	now := t.now()

	for {
		val, _ := t.clients.LoadOrStore(key, &clientAttempts{})
		entry := val.(*clientAttempts)

		entry.mu.Lock()
		if entry.gone {
			entry.mu.Unlock()
			continue
		}
		entry.prune(now.Add(-t.window))
		entry.attempts = append(entry.attempts, now)
		entry.mu.Unlock()
		return
	}
}

// prune drops attempts at or before the cutoff. Callers must hold the entry
// mutex.
func (e *clientAttempts) prune(cutoff time.Time) {
	recent := e.attempts[:0]
	for _, at := range e.attempts {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	e.attempts = recent
}

// AuthRateLimitMiddleware throttles brute-force attacks on authentication
// endpoints. Only failed attempts count against the limit: a request is
// recorded when the downstream handler responds with a 4xx status. Blocked
// clients are rejected before the handler runs and the rejection itself does
// not consume an attempt.
//
// Clients are keyed by IP. Responses include Retry-After with the seconds
// until the oldest counted failure leaves the window.
func AuthRateLimitMiddleware(
	window time.Duration,
	maxAttempts int,
	errorWriter *httputil.ErrorWriter,
	logger *slog.Logger,
) gin.HandlerFunc {
	tracker := newFailedAttemptTracker(window, maxAttempts)

	return func(c *gin.Context) {
		key := c.ClientIP()

		if isBlocked, retryAfter := tracker.blocked(key); isBlocked {
			logger.Warn("authentication rate limit exceeded",
				slog.String("client_ip", key),
				slog.Int("retry_after", retryAfter))
			errorWriter.WriteRateLimited(c, retryAfter)
			c.Abort()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			tracker.recordFailure(key)
		}
	}
}
