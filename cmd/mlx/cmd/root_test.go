package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/products":
			ck, err := r.Cookie("ml_session")
			if assert.NoError(t, err) {
				assert.Equal(t, "sess-1", ck.Value)
			}
			assert.Equal(t, "dell", r.URL.Query().Get("brand"))
			_, _ = w.Write([]byte(`{"query":"notebook","products":[{"id":"MLB1","title":"Notebook Dell","brand":"Dell","currency":"BRL","price":3500}],"total":1,"mock":false}`))
		case "/api/v1/auth/url":
			_, _ = w.Write([]byte(`{"url":"https://auth.mercadolivre.com.br/authorization?client_id=123"}`))
		case "/api/v1/quota":
			_, _ = w.Write([]byte(`{"budget":0,"used":4,"remaining":-1}`))
		case "/readyz":
			_, _ = w.Write([]byte(`{"status":"ready"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	// Config file supplies the session so the flag/file/env layering is exercised.
	cfg := filepath.Join(t.TempDir(), ".mlx.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("session: sess-1\n"), 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "search", args: []string{"search", "notebook", "--brand", "dell"}, want: "Notebook Dell"},
		{name: "auth-url", args: []string{"auth-url"}, want: "client_id=123"},
		{name: "quota", args: []string{"quota"}, want: "unlimited"},
		{name: "status", args: []string{"status"}, want: "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(tt.args, "--server", srv.URL, "--config", cfg, "--output", "table"))
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
			})

			require.NoError(t, rootCmd.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}
