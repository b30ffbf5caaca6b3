// Package domain defines the core business types for ml-explorer.
package domain

import "strings"

// Defaults substituted when the marketplace omits a field.
const (
	DefaultTitle    = "Sem título"
	DefaultBrand    = "Marca não informada"
	DefaultCurrency = "BRL"
)

// Product is a normalized catalog entry, either live or synthetic.
type Product struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Brand     string  `json:"brand"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Permalink string  `json:"permalink,omitempty"`
	HasImage  bool    `json:"has_image"`

	// Optional listing details.
	FreeShipping bool    `json:"free_shipping"`
	Rating       float64 `json:"rating,omitempty"`
	ReviewCount  int     `json:"review_count,omitempty"`
	Condition    string  `json:"condition,omitempty"`

	// IsMock marks demo data produced by a fallback generator.
	IsMock bool `json:"is_mock"`
}

// MatchesBrand reports whether query is a case-insensitive substring of the
// product's brand.
func (p *Product) MatchesBrand(query string) bool {
	return strings.Contains(strings.ToLower(p.Brand), strings.ToLower(query))
}

// FallbackReason explains why a search returned synthetic products.
type FallbackReason string

// Fallback reasons.
const (
	FallbackNone          FallbackReason = ""
	FallbackNoToken       FallbackReason = "no_token"
	FallbackDemo          FallbackReason = "demo"
	FallbackAuthExpired   FallbackReason = "auth_expired"
	FallbackUpstreamError FallbackReason = "upstream_error"
	FallbackEmpty         FallbackReason = "empty"
)
