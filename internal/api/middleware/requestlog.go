package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID returns the id assigned by RequestLog, or "".
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// RequestLog returns Echo middleware that logs one line per request. It
// reuses an incoming X-Request-ID or generates one, echoes it in the
// response and attaches the trace id when a span is active. Server errors
// log at error level; probe paths log at debug.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	quiet := map[string]struct{}{"/healthz": {}, "/readyz": {}, "/metrics": {}}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)
			status := responseStatus(c, err)

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}
			if sc := trace.SpanContextFromContext(c.Request().Context()); sc.HasTraceID() {
				attrs = append(attrs, "trace_id", sc.TraceID().String())
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}

			_, isQuiet := quiet[c.Request().URL.Path]
			switch {
			case status >= 500:
				log.Error("request", attrs...)
			case isQuiet:
				log.Debug("request", attrs...)
			default:
				log.Info("request", attrs...)
			}

			return err
		}
	}
}
