package mercadolivre

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/donaldgifford/ml-explorer/internal/metrics"
)

const (
	defaultAPIBaseURL = "https://api.mercadolibre.com"
	defaultSiteID     = "MLB"
)

// SearchClient implements Searcher using the Mercado Livre site search API.
type SearchClient struct {
	baseURL     string
	siteID      string
	client      *http.Client
	rateLimiter *RateLimiter
}

// SearchOption configures the SearchClient.
type SearchOption func(*SearchClient)

// WithAPIBaseURL overrides the default API host.
func WithAPIBaseURL(u string) SearchOption {
	return func(c *SearchClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithSiteID overrides the default marketplace site (MLB, Brazil).
func WithSiteID(id string) SearchOption {
	return func(c *SearchClient) {
		c.siteID = id
	}
}

// WithSearchHTTPClient overrides the default HTTP client.
func WithSearchHTTPClient(hc *http.Client) SearchOption {
	return func(c *SearchClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter. When set, every Search() call goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) SearchOption {
	return func(c *SearchClient) {
		c.rateLimiter = r
	}
}

// NewSearchClient creates a new catalog search client.
func NewSearchClient(opts ...SearchOption) *SearchClient {
	c := &SearchClient{
		baseURL: defaultAPIBaseURL,
		siteID:  defaultSiteID,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search implements Searcher.Search. A 401 yields a KindAuthExpired error;
// every other failure yields KindTransport.
func (c *SearchClient) Search(
	ctx context.Context,
	token string,
	req SearchRequest,
) (*SearchResponse, error) {
	ctx, span := tracer.Start(ctx, "mercadolivre.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("mercadolivre.query", req.Query),
		attribute.Bool("mercadolivre.authenticated", token != ""),
	)

	resp, err := c.search(ctx, token, req)
	if err != nil {
		outcome := "error"
		if IsAuthExpired(err) {
			outcome = "unauthorized"
		}
		metrics.MarketplaceCallsTotal.WithLabelValues("search", outcome).Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.MarketplaceCallsTotal.WithLabelValues("search", "ok").Inc()
	span.SetAttributes(attribute.Int("mercadolivre.results", len(resp.Items)))
	return resp, nil
}

func (c *SearchClient) search(
	ctx context.Context,
	token string,
	req SearchRequest,
) (*SearchResponse, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.MarketplaceRateLimitHits.Inc()
			}
			return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("rate limit: %w", err)}
		}
		metrics.MarketplaceQuotaUsed.Set(float64(c.rateLimiter.Used()))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildSearchURL(req), http.NoBody)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("creating HTTP request: %w", err)}
	}

	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.MarketplaceCallDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("executing search request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &Error{
			Kind:        KindAuthExpired,
			Status:      resp.StatusCode,
			Description: parseProviderMessage(body),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:   KindTransport,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("search API error: %s", truncateBody(body)),
		}
	}

	var apiResp searchAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("parsing search response: %w", err)}
	}

	total := apiResp.Paging.Total
	if total == 0 {
		total = len(apiResp.Results)
	}

	return &SearchResponse{
		Items: apiResp.Results,
		Total: total,
	}, nil
}

func (c *SearchClient) buildSearchURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)

	if req.SellerID != "" {
		params.Set("seller_id", req.SellerID)
	}

	return c.baseURL + "/sites/" + url.PathEscape(c.siteID) + "/search?" + params.Encode()
}

func truncateBody(body []byte) string {
	const maxLen = 200
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}
