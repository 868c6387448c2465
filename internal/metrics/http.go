package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics holds the HTTP request instruments recorded by the performance
// monitoring middleware. A nil *HTTPMetrics is valid and records nothing.
type HTTPMetrics struct {
	requestCounter    metric.Int64Counter
	durationHisto     metric.Float64Histogram
	requestSizeHisto  metric.Int64Histogram
	responseSizeHisto metric.Int64Histogram
	slowCounter       metric.Int64Counter
}

// NewHTTPMetrics creates the HTTP request instruments on the given meter
// provider. The namespace prefixes the metric names.
func NewHTTPMetrics(meterProvider metric.MeterProvider, namespace string) (*HTTPMetrics, error) {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	requestSizeHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_http_request_size_bytes", namespace),
		metric.WithDescription("HTTP request body size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request size histogram: %w", err)
	}

	responseSizeHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_http_response_size_bytes", namespace),
		metric.WithDescription("HTTP response body size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create response size histogram: %w", err)
	}

	slowCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_slow_requests_total", namespace),
		metric.WithDescription("Total number of requests exceeding the slow-request thresholds"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slow request counter: %w", err)
	}

	return &HTTPMetrics{
		requestCounter:    requestCounter,
		durationHisto:     durationHisto,
		requestSizeHisto:  requestSizeHisto,
		responseSizeHisto: responseSizeHisto,
		slowCounter:       slowCounter,
	}, nil
}

// Record counts one completed request with its duration and body sizes. The
// path must be a route pattern (e.g., /v1/users/:id), never a raw URL, to
// bound cardinality. Negative sizes (unknown content length, hijacked
// connections) are recorded as zero.
func (h *HTTPMetrics) Record(
	ctx context.Context,
	method, path string,
	statusCode int,
	duration time.Duration,
	requestBytes, responseBytes int64,
) {
	if h == nil {
		return
	}
	if path == "" {
		path = "unknown"
	}
	if requestBytes < 0 {
		requestBytes = 0
	}
	if responseBytes < 0 {
		responseBytes = 0
	}

	attrs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status_code", strconv.Itoa(statusCode)),
	}

	h.requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	h.durationHisto.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	h.requestSizeHisto.Record(ctx, requestBytes, metric.WithAttributes(attrs...))
	h.responseSizeHisto.Record(ctx, responseBytes, metric.WithAttributes(attrs...))
}

// RecordSlow counts a request that crossed a slow-request threshold.
// Severity is "slow" or "very_slow".
func (h *HTTPMetrics) RecordSlow(ctx context.Context, method, path, severity string) {
	if h == nil {
		return
	}
	if path == "" {
		path = "unknown"
	}

	h.slowCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
			attribute.String("severity", severity),
		),
	)
}
