// Package middleware provides Echo middleware for ml-explorer.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ml-explorer/internal/metrics"
)

// unmatchedPath labels requests that hit no registered route.
const unmatchedPath = "unmatched"

// defaultSkipPaths are probe and scrape endpoints kept out of request
// metrics. The health handlers maintain their own gauges.
var defaultSkipPaths = []string{"/metrics", "/healthz", "/readyz"}

// Metrics returns Echo middleware that records request duration and count by
// method, route and status. Paths in skip (default: /metrics, /healthz,
// /readyz) are not recorded.
func Metrics(skip ...string) echo.MiddlewareFunc {
	if len(skip) == 0 {
		skip = defaultSkipPaths
	}
	skipSet := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipSet[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skipSet[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start).Seconds()

			path := c.Path()
			if path == "" || errors.Is(err, echo.ErrNotFound) {
				path = unmatchedPath
			}
			status := strconv.Itoa(responseStatus(c, err))
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(duration)
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

// responseStatus returns the status the client will see. Errors returned by
// a handler are written after middleware runs, so their code is taken from
// the error.
func responseStatus(c echo.Context, err error) int {
	if err != nil && !c.Response().Committed {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		return http.StatusInternalServerError
	}
	return c.Response().Status
}
