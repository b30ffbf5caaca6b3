package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ml-explorer/internal/api/handlers"
	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
	mlMocks "github.com/donaldgifford/ml-explorer/internal/mercadolivre/mocks"
	"github.com/donaldgifford/ml-explorer/internal/session"
	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

type productsBody struct {
	Query          string           `json:"query"`
	Products       []domain.Product `json:"products"`
	Total          int              `json:"total"`
	Mock           bool             `json:"mock"`
	FallbackReason string           `json:"fallback_reason"`
}

func TestProductsHandler_ListProducts(t *testing.T) {
	t.Parallel()

	live := []domain.Product{
		{ID: "MLB1", Title: "Galaxy S24", Brand: "Samsung", Currency: "BRL"},
		{ID: "MLB2", Title: "iPhone 15", Brand: "Apple", Currency: "BRL"},
	}

	tests := []struct {
		name       string
		path       string
		cookie     bool
		setupMock  func(*mlMocks.MockProductCatalog)
		wantQuery  string
		wantTotal  int
		wantMock   bool
		wantReason string
	}{
		{
			name: "no session gets demo data",
			path: "/api/v1/products",
			setupMock: func(m *mlMocks.MockProductCatalog) {
				m.EXPECT().
					Search(mock.Anything, nil, "notebook", "").
					Return(mercadolivre.SearchResult{
						Products:       mercadolivre.FixtureGenerator{}.Generate("notebook", 4),
						Mock:           true,
						FallbackReason: domain.FallbackNoToken,
					}).
					Once()
			},
			wantQuery:  "notebook",
			wantTotal:  4,
			wantMock:   true,
			wantReason: "no_token",
		},
		{
			name:   "session token searches live",
			path:   "/api/v1/products?q=celular&seller_id=42",
			cookie: true,
			setupMock: func(m *mlMocks.MockProductCatalog) {
				m.EXPECT().
					Search(mock.Anything, mock.MatchedBy(func(s mercadolivre.TokenSlot) bool {
						tok, ok := s.Token(context.Background())
						return ok && tok.AccessToken == "APP_USR-1"
					}), "celular", "42").
					Return(mercadolivre.SearchResult{Products: live}).
					Once()
			},
			wantQuery: "celular",
			wantTotal: 2,
		},
		{
			name:   "brand filter",
			path:   "/api/v1/products?q=celular&brand=APPLE",
			cookie: true,
			setupMock: func(m *mlMocks.MockProductCatalog) {
				m.EXPECT().
					Search(mock.Anything, mock.Anything, "celular", "").
					Return(mercadolivre.SearchResult{Products: live}).
					Once()
			},
			wantQuery: "celular",
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := session.NewMemoryStore()
			require.NoError(t, store.Save(context.Background(), "sess-1",
				&session.Session{AccessToken: "APP_USR-1"}, time.Hour))

			catalog := mlMocks.NewMockProductCatalog(t)
			tt.setupMock(catalog)

			_, api := humatest.New(t)
			handlers.RegisterProductsRoutes(api, handlers.NewProductsHandler(catalog, session.NewManager(store), nil))

			args := []any{}
			if tt.cookie {
				args = append(args, "Cookie: ml_session=sess-1")
			}
			resp := api.Get(tt.path, args...)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			var body productsBody
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tt.wantQuery, body.Query)
			assert.Equal(t, tt.wantTotal, body.Total)
			assert.Len(t, body.Products, tt.wantTotal)
			assert.Equal(t, tt.wantMock, body.Mock)
			assert.Equal(t, tt.wantReason, body.FallbackReason)
		})
	}
}

func TestProductsHandler_UnknownSession(t *testing.T) {
	t.Parallel()

	catalog := mlMocks.NewMockProductCatalog(t)
	catalog.EXPECT().
		Search(mock.Anything, nil, "notebook", "").
		Return(mercadolivre.SearchResult{
			Products:       []domain.Product{{ID: "1", Title: "x", IsMock: true}},
			Mock:           true,
			FallbackReason: domain.FallbackNoToken,
		}).
		Once()

	_, api := humatest.New(t)
	handlers.RegisterProductsRoutes(api,
		handlers.NewProductsHandler(catalog, session.NewManager(session.NewMemoryStore()), nil))

	resp := api.Get("/api/v1/products", "Cookie: ml_session=expired")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"mock":true`)
	assert.Contains(t, resp.Body.String(), `"is_mock":true`)
}
