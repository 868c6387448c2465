// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/polishfootballnetwork/api/internal/errors"
)

// ErrorBody is the structured error response returned by every failing endpoint.
// Instance carries the request correlation ID so users and support can reference
// a specific failure in the logs. StackTrace is populated only in development.
type ErrorBody struct {
	Title      string            `json:"title"`
	Status     int               `json:"status"`
	Detail     string            `json:"detail"`
	Instance   string            `json:"instance"`
	Timestamp  time.Time         `json:"timestamp"`
	Errors     map[string]string `json:"errors,omitempty"`
	StackTrace string            `json:"stackTrace,omitempty"`
}

// ErrorWriter maps domain errors to structured HTTP error responses.
// It is the single place that writes error bodies; handlers and middleware
// must not build error responses themselves.
type ErrorWriter struct {
	logger      *slog.Logger
	development bool
}

// NewErrorWriter creates an ErrorWriter. When development is true, internal
// error details and stack traces are included in response bodies.
func NewErrorWriter(logger *slog.Logger, development bool) *ErrorWriter {
	return &ErrorWriter{logger: logger, development: development}
}

// WriteError maps a domain error to an HTTP status code and writes the
// structured error body. Internal failure reasons are logged but never
// returned verbatim to the client.
func (w *ErrorWriter) WriteError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var status int
	var title, detail string
	var fieldErrors map[string]string

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
		title = "validation_failure"
		detail = err.Error()
		fieldErrors = extractFieldErrors(err)

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		title = "unauthorized"
		detail = "Authentication is required"

	case apperrors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		title = "forbidden"
		detail = "You don't have permission to access this resource"

	case apperrors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		title = "not_found"
		detail = "The requested resource was not found"

	case apperrors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		title = "conflict"
		detail = "A conflict occurred with existing data"

	case apperrors.Is(err, apperrors.ErrRateLimited):
		status = http.StatusTooManyRequests
		title = "rate_limited"
		detail = "Too many requests. Please retry after the specified delay."

	default:
		status = http.StatusInternalServerError
		title = "internal_error"
		detail = "An internal error occurred"
		if w.development {
			detail = err.Error()
		}
	}

	w.log(status, title, err)
	c.JSON(status, w.body(c, status, title, detail, fieldErrors, ""))
}

// WritePanic writes a 500 response for a recovered panic. The stack trace is
// included in the body only in development mode.
func (w *ErrorWriter) WritePanic(c *gin.Context, recovered any, stack []byte) {
	status := http.StatusInternalServerError
	detail := "An internal error occurred"
	stackTrace := ""

	if w.development {
		detail = "panic: " + panicMessage(recovered)
		stackTrace = string(stack)
	}

	if w.logger != nil {
		w.logger.Error("panic recovered",
			slog.String("correlation_id", requestid.Get(c)),
			slog.Any("error", recovered),
			slog.String("path", c.Request.URL.Path),
		)
	}

	c.JSON(status, w.body(c, status, "internal_error", detail, nil, stackTrace))
}

// WriteRateLimited writes a 429 with a Retry-After hint in seconds.
func (w *ErrorWriter) WriteRateLimited(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))

	status := http.StatusTooManyRequests
	w.log(status, "rate_limited", apperrors.ErrRateLimited)
	c.JSON(status, w.body(
		c,
		status,
		"rate_limited",
		"Too many failed authentication attempts. Please retry after the specified delay.",
		nil,
		"",
	))
}

func (w *ErrorWriter) body(
	c *gin.Context,
	status int,
	title, detail string,
	fieldErrors map[string]string,
	stackTrace string,
) ErrorBody {
	return ErrorBody{
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   requestid.Get(c),
		Timestamp:  time.Now().UTC(),
		Errors:     fieldErrors,
		StackTrace: stackTrace,
	}
}

// log records the failure at a severity derived from the response status.
func (w *ErrorWriter) log(status int, title string, err error) {
	if w.logger == nil {
		return
	}

	attrs := []any{
		slog.Int("status_code", status),
		slog.String("error_code", title),
		slog.Any("error", err),
	}

	switch {
	case status >= http.StatusInternalServerError:
		w.logger.Error("request failed", attrs...)
	case status == http.StatusUnauthorized || status == http.StatusTooManyRequests:
		w.logger.Warn("request failed", attrs...)
	default:
		w.logger.Info("request failed", attrs...)
	}
}

// extractFieldErrors pulls field-level messages out of a validation error chain.
func extractFieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !apperrors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			fields[field] = ferr.Error()
		}
	}
	return fields
}

func panicMessage(recovered any) string {
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	if s, ok := recovered.(string); ok {
		return s
	}
	return "unknown panic"
}
