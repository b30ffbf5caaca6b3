package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"github.com/labstack/echo/v4"
)

// Recovery returns Echo middleware that recovers from panics and logs the
// stack. API routes get a JSON 500; pages get a plain-text 500.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)

				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", RequestID(c),
					"stack", string(buf[:n]),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				if strings.HasPrefix(c.Request().URL.Path, "/api/") {
					err = c.JSON(http.StatusInternalServerError, map[string]string{
						"error": "internal server error",
					})
					return
				}
				err = c.String(http.StatusInternalServerError, "Erro interno do servidor.")
			}()
			return next(c)
		}
	}
}
