package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
	"github.com/donaldgifford/ml-explorer/internal/session"
	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

// ProductsHandler serves catalog searches for API clients.
type ProductsHandler struct {
	catalog  mercadolivre.ProductCatalog
	sessions *session.Manager
	logger   *slog.Logger
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(
	catalog mercadolivre.ProductCatalog,
	sessions *session.Manager,
	logger *slog.Logger,
) *ProductsHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProductsHandler{catalog: catalog, sessions: sessions, logger: logger}
}

// ProductsInput holds the search parameters.
type ProductsInput struct {
	Query    string `query:"q"          doc:"Search query (default notebook)" example:"notebook"`
	Brand    string `query:"brand"      doc:"Case-insensitive brand filter"   example:"samsung"`
	SellerID string `query:"seller_id"  doc:"Restrict results to one seller"  example:"179571326"`
	Session  string `cookie:"ml_session" doc:"Session cookie set by the login flow"`
}

// ProductsOutput is the response body for the products endpoint.
type ProductsOutput struct {
	Body struct {
		Query          string                `json:"query"                     doc:"Query actually searched"`
		Products       []domain.Product      `json:"products"                  doc:"Normalized products, images first"`
		Total          int                   `json:"total"                     doc:"Number of products returned"`
		Mock           bool                  `json:"mock"                      doc:"Whether the products are demo data"`
		FallbackReason domain.FallbackReason `json:"fallback_reason,omitempty" doc:"Why demo data was returned" enum:"no_token,demo,auth_expired,upstream_error,empty"`
	}
}

// ListProducts searches the catalog with the caller's session token. Without
// a session the result is demo data.
func (h *ProductsHandler) ListProducts(ctx context.Context, input *ProductsInput) (*ProductsOutput, error) {
	var slot mercadolivre.TokenSlot
	sess, err := h.sessions.Get(ctx, input.Session)
	switch {
	case err == nil:
		slot = h.sessions.Slot(input.Session, sess)
	case !errors.Is(err, session.ErrNotFound):
		h.logger.Warn("loading session failed", "error", err)
	}

	query := input.Query
	if query == "" {
		query = mercadolivre.DefaultQuery
	}

	res := h.catalog.Search(ctx, slot, query, input.SellerID)
	products := mercadolivre.FilterByBrand(res.Products, input.Brand)

	out := &ProductsOutput{}
	out.Body.Query = query
	out.Body.Products = products
	out.Body.Total = len(products)
	out.Body.Mock = res.Mock
	out.Body.FallbackReason = res.FallbackReason
	return out, nil
}

// RegisterProductsRoutes registers the products endpoint with the Huma API.
func RegisterProductsRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "Search catalog products",
		Description: "Searches the Mercado Livre catalog with the session token, falling back to demo products when the live catalog cannot answer.",
		Tags:        []string{"catalog"},
	}, h.ListProducts)
}
