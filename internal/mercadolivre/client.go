// Package mercadolivre provides the Mercado Livre OAuth2 and catalog search
// clients, abstracted behind interfaces for testability.
package mercadolivre

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --config ../../.mockery.yaml

import (
	"context"

	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

// DemoToken is the access token stored by the mock login. Searches made with
// it never reach the marketplace.
const DemoToken = "mock-token" //nolint:gosec // not a credential

// SearchRequest defines the parameters for a catalog search.
type SearchRequest struct {
	Query    string
	SellerID string
}

// SearchResponse holds the raw results of a catalog search.
type SearchResponse struct {
	Items []Item
	Total int
}

// Token is the credential set returned by the token endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// Searcher defines the interface for querying the catalog search endpoint.
// An empty token sends an unauthenticated request.
type Searcher interface {
	Search(ctx context.Context, token string, req SearchRequest) (*SearchResponse, error)
}

// TokenRefresher obtains a new access token from a refresh token.
type TokenRefresher interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (*Token, error)
}

// Authenticator defines the authorization-code flow used by the web layer.
type Authenticator interface {
	TokenRefresher
	AuthorizationURL() string
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	Configured() bool
}

// ProductCatalog is the search entry point consumed by the web and API layers.
type ProductCatalog interface {
	Search(ctx context.Context, slot TokenSlot, query, sellerID string) SearchResult
}

// TokenSlot is the caller-owned storage holding the session's tokens. The
// catalog reads it before searching and writes it after a successful refresh.
type TokenSlot interface {
	Token(ctx context.Context) (Token, bool)
	SetToken(ctx context.Context, tok Token) error
}

// SearchResult is the outcome of Catalog.Search. Products is never nil.
type SearchResult struct {
	Products       []domain.Product      `json:"products"`
	Mock           bool                  `json:"mock"`
	FallbackReason domain.FallbackReason `json:"fallback_reason,omitempty"`
	Refreshed      bool                  `json:"refreshed,omitempty"`
}

// MemorySlot is a TokenSlot backed by a plain struct, for callers without a
// session store (CLI, tests).
type MemorySlot struct {
	tok Token
	set bool
}

// NewMemorySlot returns a slot holding tok. An empty access token reads as
// absent.
func NewMemorySlot(tok Token) *MemorySlot {
	return &MemorySlot{tok: tok, set: tok.AccessToken != ""}
}

// Token implements TokenSlot.
func (s *MemorySlot) Token(_ context.Context) (Token, bool) {
	return s.tok, s.set
}

// SetToken implements TokenSlot.
func (s *MemorySlot) SetToken(_ context.Context, tok Token) error {
	s.tok = tok
	s.set = tok.AccessToken != ""
	return nil
}
