package http

import (
	"log/slog"
	runtimemetrics "runtime/metrics"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/polishfootballnetwork/api/internal/metrics"
)

// heapAllocsMetric is the cumulative bytes allocated on the heap since process
// start. The counter is monotonic, so sampling it before and after a request
// yields the allocation delta attributable to handling it (plus whatever other
// goroutines allocated in the meantime, which keeps the measurement cheap but
// approximate).
const heapAllocsMetric = "/gc/heap/allocs:bytes"

// AlertNotifier receives notifications for requests that breach the
// performance thresholds. Implementations must not block; the middleware
// calls them inline.
type AlertNotifier interface {
	NotifySlowRequest(method, path string, duration time.Duration)
	NotifyLargeResponse(method, path string, responseBytes int64)
	NotifyHighMemoryUsage(method, path string, allocatedBytes uint64)
}

// PerformanceConfig controls the performance monitoring middleware.
type PerformanceConfig struct {
	// SlowThreshold marks a request as slow (logged at warn).
	SlowThreshold time.Duration

	// VerySlowThreshold marks a request as very slow (logged at error and
	// reported to the notifier).
	VerySlowThreshold time.Duration

	// LargeResponseThresholdBytes marks a response as oversized (logged at
	// warn and reported to the notifier). Zero disables the check.
	LargeResponseThresholdBytes int64

	// MemoryDeltaThresholdBytes marks a request as allocation-heavy (logged
	// at warn and reported to the notifier). Zero disables the check and
	// skips heap sampling entirely.
	MemoryDeltaThresholdBytes uint64
}

// PerformanceMiddleware measures every request, records HTTP metrics by route
// pattern, and escalates threshold breaches. Route patterns (c.FullPath) keep
// the metric cardinality bounded; unmatched routes are grouped as "unknown".
// The notifier may be nil.
func PerformanceMiddleware(
	cfg PerformanceConfig,
	httpMetrics *metrics.HTTPMetrics,
	notifier AlertNotifier,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		var heapBefore uint64
		if cfg.MemoryDeltaThresholdBytes > 0 {
			heapBefore = readHeapAllocs()
		}

		c.Next()

		duration := time.Since(start)
		method := c.Request.Method
		path := c.FullPath()
		ctx := c.Request.Context()
		responseBytes := int64(c.Writer.Size())

		httpMetrics.Record(ctx, method, path, c.Writer.Status(), duration,
			c.Request.ContentLength, responseBytes)

		switch {
		case duration >= cfg.VerySlowThreshold:
			httpMetrics.RecordSlow(ctx, method, path, "very_slow")
			logger.Error("very slow request",
				slog.String("correlation_id", requestid.Get(c)),
				slog.String("method", method),
				slog.String("path", path),
				slog.Duration("duration", duration),
				slog.Duration("threshold", cfg.VerySlowThreshold))
			if notifier != nil {
				notifier.NotifySlowRequest(method, path, duration)
			}

		case duration >= cfg.SlowThreshold:
			httpMetrics.RecordSlow(ctx, method, path, "slow")
			logger.Warn("slow request",
				slog.String("correlation_id", requestid.Get(c)),
				slog.String("method", method),
				slog.String("path", path),
				slog.Duration("duration", duration),
				slog.Duration("threshold", cfg.SlowThreshold))
		}

		if cfg.LargeResponseThresholdBytes > 0 && responseBytes >= cfg.LargeResponseThresholdBytes {
			logger.Warn("large response",
				slog.String("correlation_id", requestid.Get(c)),
				slog.String("method", method),
				slog.String("path", path),
				slog.Int64("response_bytes", responseBytes),
				slog.Int64("threshold_bytes", cfg.LargeResponseThresholdBytes))
			if notifier != nil {
				notifier.NotifyLargeResponse(method, path, responseBytes)
			}
		}

		if cfg.MemoryDeltaThresholdBytes > 0 {
			if delta := readHeapAllocs() - heapBefore; delta >= cfg.MemoryDeltaThresholdBytes {
				logger.Warn("high memory usage",
					slog.String("correlation_id", requestid.Get(c)),
					slog.String("method", method),
					slog.String("path", path),
					slog.Uint64("allocated_bytes", delta),
					slog.Uint64("threshold_bytes", cfg.MemoryDeltaThresholdBytes))
				if notifier != nil {
					notifier.NotifyHighMemoryUsage(method, path, delta)
				}
			}
		}
	}
}

// readHeapAllocs samples the cumulative heap allocation counter.
func readHeapAllocs() uint64 {
	samples := []runtimemetrics.Sample{{Name: heapAllocsMetric}}
	runtimemetrics.Read(samples)
	if samples[0].Value.Kind() != runtimemetrics.KindUint64 {
		return 0
	}
	return samples[0].Value.Uint64()
}
