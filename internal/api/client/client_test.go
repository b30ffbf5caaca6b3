package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Products(context.Background(), ProductsParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 503)")
}

func TestClient_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Quota(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_Products(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    ProductsParams
		session   string
		wantQuery map[string]string
		wantRaw   string
	}{
		{
			name:    "no filters",
			wantRaw: "",
		},
		{
			name:   "all filters",
			params: ProductsParams{Query: "placa de vídeo", Brand: "asus", SellerID: "123"},
			wantQuery: map[string]string{
				"q":         "placa de vídeo",
				"brand":     "asus",
				"seller_id": "123",
			},
		},
		{
			name:    "with session",
			params:  ProductsParams{Query: "notebook"},
			session: " abc-123 ",
			wantQuery: map[string]string{
				"q": "notebook",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/v1/products", r.URL.Path)
				if tt.wantQuery == nil {
					assert.Equal(t, tt.wantRaw, r.URL.RawQuery)
				}
				for k, v := range tt.wantQuery {
					assert.Equal(t, v, r.URL.Query().Get(k))
				}

				ck, err := r.Cookie("ml_session")
				if tt.session == "" {
					assert.ErrorIs(t, err, http.ErrNoCookie)
				} else if assert.NoError(t, err) {
					assert.Equal(t, "abc-123", ck.Value)
				}

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(ProductsResponse{
					Query:          "notebook",
					Products:       []domain.Product{{ID: "MOCK-1", Title: "Notebook Samsung Book", IsMock: true}},
					Total:          1,
					Mock:           true,
					FallbackReason: domain.FallbackNoToken,
				})
			}))
			defer srv.Close()

			var opts []Option
			if tt.session != "" {
				opts = append(opts, WithSession(tt.session))
			}
			resp, err := New(srv.URL+"/", opts...).Products(context.Background(), tt.params)
			require.NoError(t, err)
			assert.True(t, resp.Mock)
			assert.Equal(t, domain.FallbackNoToken, resp.FallbackReason)
			require.Len(t, resp.Products, 1)
			assert.True(t, resp.Products[0].IsMock)
		})
	}
}

func TestClient_AuthURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/url", r.URL.Path)
		_, _ = w.Write([]byte(`{"url":"https://auth.mercadolivre.com.br/authorization?client_id=123"}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).AuthURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://auth.mercadolivre.com.br/authorization?client_id=123", got)
}

func TestClient_Quota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/quota", r.URL.Path)
		_, _ = w.Write([]byte(`{"budget":5000,"used":12,"remaining":4988,"reset_at":"2026-06-16T14:30:00Z"}`))
	}))
	defer srv.Close()

	q, err := New(srv.URL).Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), q.Budget)
	assert.Equal(t, int64(12), q.Used)
	assert.Equal(t, int64(4988), q.Remaining)
	require.NotNil(t, q.ResetAt)
	assert.True(t, q.ResetAt.Equal(time.Date(2026, 6, 16, 14, 30, 0, 0, time.UTC)))
}

func TestClient_Ready(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/readyz", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}))
	defer srv.Close()

	status, err := New(srv.URL).Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ready", status)
}
