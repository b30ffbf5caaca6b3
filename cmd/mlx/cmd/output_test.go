package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/ml-explorer/internal/api/client"
	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "Dell", max: 10, want: "Dell"},
		{name: "exact", in: "0123456789", max: 10, want: "0123456789"},
		{name: "long", in: "Notebook Samsung Book", max: 10, want: "Noteboo..."},
		{name: "multibyte", in: "Câmera fotográfica", max: 9, want: "Câmera..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}

func TestPrintProducts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printProducts(&buf, &apiclient.ProductsResponse{
		Query: "notebook",
		Products: []domain.Product{
			{ID: "MLB1", Title: "Notebook Dell", Brand: "Dell", Currency: "BRL", Price: 3500, FreeShipping: true},
			{ID: "MLB2", Title: "Notebook Acer", Brand: "Acer", Currency: "BRL", Price: 2999.9},
		},
		Total:          2,
		Mock:           true,
		FallbackReason: domain.FallbackAuthExpired,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `Demo data (auth_expired) for "notebook"`)
	assert.Contains(t, out, "BRL 3500.00")
	assert.Contains(t, out, "free")
	assert.Contains(t, out, "BRL 2999.90")
	assert.Contains(t, out, "2 products")
}

func TestPrintProducts_Live(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printProducts(&buf, &apiclient.ProductsResponse{Query: "x"}))
	assert.NotContains(t, buf.String(), "Demo data")
	assert.Contains(t, buf.String(), "0 products")
}

func TestPrintQuota(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 6, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		quota   apiclient.QuotaResponse
		want    []string
		notWant []string
	}{
		{
			name:    "unlimited",
			quota:   apiclient.QuotaResponse{Used: 3, Remaining: -1},
			want:    []string{"unlimited", "Used:"},
			notWant: []string{"Remaining:"},
		},
		{
			name:  "budgeted",
			quota: apiclient.QuotaResponse{Budget: 5000, Used: 12, Remaining: 4988, ResetAt: &reset},
			want:  []string{"5000", "4988", "2026-06-16T14:30:00Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printQuota(&buf, &tt.quota))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestOutputJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputJSON(&buf, map[string]string{"url": "https://example.com"}))
	assert.JSONEq(t, `{"url":"https://example.com"}`, buf.String())
}
