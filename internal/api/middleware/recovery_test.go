package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String(), "no panic should produce no log output")
}

func TestRecovery_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		path        string
		panicValue  any
		wantBody    string
		wantCT      string
		wantLogPart []string
	}{
		{
			name:        "api route gets JSON",
			method:      http.MethodGet,
			path:        "/api/v1/products",
			panicValue:  "nil catalog",
			wantBody:    `{"error":"internal server error"}`,
			wantCT:      echo.MIMEApplicationJSON,
			wantLogPart: []string{"panic recovered", "nil catalog", "path=/api/v1/products"},
		},
		{
			name:        "page route gets text",
			method:      http.MethodGet,
			path:        "/callback",
			panicValue:  42,
			wantBody:    "Erro interno do servidor.",
			wantCT:      echo.MIMETextPlain,
			wantLogPart: []string{"42", "method=GET", "request_id=req-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(requestIDKey, "req-1")

			handler := Recovery(logger)(func(_ echo.Context) error {
				panic(tt.panicValue)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), tt.wantCT)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			logOutput := buf.String()
			for _, part := range tt.wantLogPart {
				assert.Contains(t, logOutput, part)
			}
		})
	}
}

func TestRecovery_PanicAfterWrite(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(logger)(func(c echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		panic("late")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
