package client

import (
	"context"
	"net/url"
	"time"

	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

// ProductsResponse is the body of GET /api/v1/products.
type ProductsResponse struct {
	Query          string                `json:"query"`
	Products       []domain.Product      `json:"products"`
	Total          int                   `json:"total"`
	Mock           bool                  `json:"mock"`
	FallbackReason domain.FallbackReason `json:"fallback_reason,omitempty"`
}

// ProductsParams defines the search filters.
type ProductsParams struct {
	Query    string
	Brand    string
	SellerID string
}

// Products searches the catalog. Without a session the server answers with
// demo data.
func (c *Client) Products(ctx context.Context, params ProductsParams) (*ProductsResponse, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.Brand != "" {
		q.Set("brand", params.Brand)
	}
	if params.SellerID != "" {
		q.Set("seller_id", params.SellerID)
	}

	path := "/api/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AuthURL returns the provider authorization URL the server would redirect to.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.get(ctx, "/api/v1/auth/url", &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// QuotaResponse is the body of GET /api/v1/quota.
type QuotaResponse struct {
	Budget    int64      `json:"budget"`
	Used      int64      `json:"used"`
	Remaining int64      `json:"remaining"`
	ResetAt   *time.Time `json:"reset_at,omitempty"`
}

// Quota returns the outbound call budget.
func (c *Client) Quota(ctx context.Context) (*QuotaResponse, error) {
	var resp QuotaResponse
	if err := c.get(ctx, "/api/v1/quota", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ready reports the server's readiness status string.
func (c *Client) Ready(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/readyz", &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
