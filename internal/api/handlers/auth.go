package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
)

// AuthHandler exposes the authorization URL to API clients.
type AuthHandler struct {
	auth mercadolivre.Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth mercadolivre.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// AuthURLOutput is the response body for the auth URL endpoint.
type AuthURLOutput struct {
	Body struct {
		URL string `json:"url" doc:"Provider authorization URL" example:"https://auth.mercadolivre.com.br/authorization?client_id=123&redirect_uri=http%3A%2F%2Flocalhost%3A8000%2Fcallback&response_type=code&scope=offline_access+read"`
	}
}

// GetAuthURL returns the URL a browser should visit to authorize the app.
func (h *AuthHandler) GetAuthURL(_ context.Context, _ *struct{}) (*AuthURLOutput, error) {
	u := h.auth.AuthorizationURL()
	if u == "" {
		return nil, huma.Error503ServiceUnavailable("authorization URL unavailable: ML_CLIENT_ID or ML_REDIRECT_URI not configured")
	}
	out := &AuthURLOutput{}
	out.Body.URL = u
	return out, nil
}

// RegisterAuthRoutes registers the auth endpoints with the Huma API.
func RegisterAuthRoutes(api huma.API, h *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-auth-url",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/url",
		Summary:     "Get the OAuth authorization URL",
		Description: "Returns the Mercado Livre authorization URL for the configured client id and redirect URI.",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.GetAuthURL)
}
