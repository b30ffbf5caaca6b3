package mercadolivre

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/ml-explorer/internal/metrics"
	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

// DefaultQuery is searched when the caller supplies none.
const DefaultQuery = "notebook"

// Catalog implements ProductCatalog. It searches with the token held in the
// caller's slot, refreshes and retries once on a 401, and answers with mock
// products whenever no live products can be produced.
type Catalog struct {
	searcher  Searcher
	refresher TokenRefresher
	mocks     MockGenerator
	mockCount int
	logger    *slog.Logger
}

// CatalogOption configures the Catalog.
type CatalogOption func(*Catalog)

// WithMockGenerator replaces the default FixtureGenerator.
func WithMockGenerator(g MockGenerator) CatalogOption {
	return func(c *Catalog) {
		c.mocks = g
	}
}

// WithMockCount sets how many mock products a fallback returns.
func WithMockCount(n int) CatalogOption {
	return func(c *Catalog) {
		if n > 0 {
			c.mockCount = n
		}
	}
}

// WithCatalogLogger sets the logger.
func WithCatalogLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = l
	}
}

// NewCatalog creates a Catalog. refresher may be nil, in which case a 401
// falls back to mock products immediately.
func NewCatalog(searcher Searcher, refresher TokenRefresher, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		searcher:  searcher,
		refresher: refresher,
		mocks:     FixtureGenerator{},
		mockCount: DefaultMockCount,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search implements ProductCatalog.Search. It never fails: every error path
// ends in a mock result tagged with the reason.
func (c *Catalog) Search(ctx context.Context, slot TokenSlot, query, sellerID string) SearchResult {
	ctx, span := tracer.Start(ctx, "mercadolivre.Catalog.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}
	req := SearchRequest{Query: query, SellerID: strings.TrimSpace(sellerID)}

	var tok Token
	var ok bool
	if slot != nil {
		tok, ok = slot.Token(ctx)
	}

	result := c.search(ctx, slot, tok, ok, req)
	span.SetAttributes(
		attribute.Bool("catalog.mock", result.Mock),
		attribute.String("catalog.fallback_reason", string(result.FallbackReason)),
		attribute.Int("catalog.products", len(result.Products)),
	)
	metrics.ProductsReturned.Observe(float64(len(result.Products)))
	return result
}

func (c *Catalog) search(
	ctx context.Context,
	slot TokenSlot,
	tok Token,
	ok bool,
	req SearchRequest,
) SearchResult {
	switch {
	case !ok || tok.AccessToken == "":
		return c.fallback(req.Query, domain.FallbackNoToken, nil)
	case tok.AccessToken == DemoToken:
		return c.fallback(req.Query, domain.FallbackDemo, nil)
	}

	resp, err := c.searcher.Search(ctx, tok.AccessToken, req)
	refreshed := false

	if IsAuthExpired(err) {
		newTok, rerr := c.refresh(ctx, slot, tok)
		if rerr != nil {
			return c.fallback(req.Query, domain.FallbackAuthExpired, rerr)
		}
		refreshed = true
		resp, err = c.searcher.Search(ctx, newTok.AccessToken, req)
	}

	var result SearchResult
	switch {
	case IsAuthExpired(err):
		result = c.fallback(req.Query, domain.FallbackAuthExpired, err)
	case err != nil:
		result = c.fallback(req.Query, domain.FallbackUpstreamError, err)
	case resp == nil || len(resp.Items) == 0:
		result = c.fallback(req.Query, domain.FallbackEmpty, nil)
	default:
		result = SearchResult{Products: Normalize(resp.Items)}
	}
	result.Refreshed = refreshed
	return result
}

// refresh exchanges the slot's refresh token once and stores the result.
func (c *Catalog) refresh(ctx context.Context, slot TokenSlot, tok Token) (*Token, error) {
	if c.refresher == nil || tok.RefreshToken == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("skipped").Inc()
		return nil, &Error{Kind: KindAuthExpired, Description: "access token expired and no refresh token is available"}
	}

	newTok, err := c.refresher.RefreshAccessToken(ctx, tok.RefreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()

	if newTok.RefreshToken == "" {
		newTok.RefreshToken = tok.RefreshToken
	}
	if newTok.UserID == "" {
		newTok.UserID = tok.UserID
	}

	if err := slot.SetToken(ctx, *newTok); err != nil {
		// The retry still uses the new token; the next request refreshes again.
		c.logger.Warn("storing refreshed token failed", "error", err)
	}
	c.logger.Info("access token refreshed after 401")
	return newTok, nil
}

func (c *Catalog) fallback(query string, reason domain.FallbackReason, err error) SearchResult {
	if err != nil {
		c.logger.Warn("catalog search degraded to mock products",
			"query", query,
			"reason", reason,
			"error", err,
		)
	} else {
		c.logger.Debug("serving mock products", "query", query, "reason", reason)
	}
	metrics.MockFallbacksTotal.WithLabelValues(string(reason)).Inc()

	products := c.mocks.Generate(query, c.mockCount)
	if products == nil {
		products = []domain.Product{}
	}
	for i := range products {
		products[i].IsMock = true
	}
	return SearchResult{
		Products:       products,
		Mock:           true,
		FallbackReason: reason,
	}
}
