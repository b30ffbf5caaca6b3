// Package web serves the browser-facing pages and the OAuth redirect flow.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
	"github.com/donaldgifford/ml-explorer/internal/metrics"
	"github.com/donaldgifford/ml-explorer/internal/session"
	"github.com/donaldgifford/ml-explorer/internal/web/views"
)

// PlaceholderClientID is the client id shipped in the sample .env.
const PlaceholderClientID = "seu_client_id"

// Messages returned as plain text by the callback.
const (
	MsgMissingCode     = "Erro: Código de autorização não recebido."
	MsgInvalidState    = "Erro: Estado de autorização inválido."
	MsgAuthFailed      = "Erro na autenticação: "
	MsgUnknownError    = "Erro desconhecido"
	msgConfigTitle     = "Erro de configuração"
	msgConfigTextEmpty = "ML_CLIENT_ID ou ML_REDIRECT_URI não configurados."
)

// Handler serves the HTML routes.
type Handler struct {
	auth     mercadolivre.Authenticator
	catalog  mercadolivre.ProductCatalog
	sessions *session.Manager
	clientID string
	logger   *slog.Logger
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithClientID sets the configured client id. An empty or placeholder id
// sends /login to the demo login.
func WithClientID(id string) HandlerOption {
	return func(h *Handler) {
		h.clientID = strings.TrimSpace(id)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = l
	}
}

// NewHandler creates a Handler.
func NewHandler(
	auth mercadolivre.Authenticator,
	catalog mercadolivre.ProductCatalog,
	sessions *session.Manager,
	opts ...HandlerOption,
) *Handler {
	h := &Handler{
		auth:     auth,
		catalog:  catalog,
		sessions: sessions,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the page routes on e.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.Index)
	e.GET("/login", h.Login)
	e.GET("/login-mock", h.LoginMock)
	e.GET("/callback", h.Callback)
	e.GET("/logout", h.Logout)
}

// Index shows the login prompt, or searches with the session's token.
func (h *Handler) Index(c echo.Context) error {
	id, sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		return render(c, http.StatusOK, views.Index(views.IndexData{}))
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		query = mercadolivre.DefaultQuery
	}
	brand := strings.TrimSpace(c.QueryParam("brand"))
	sellerID := strings.TrimSpace(c.QueryParam("seller_id"))

	res := h.catalog.Search(c.Request().Context(), h.sessions.Slot(id, sess), query, sellerID)

	return render(c, http.StatusOK, views.Index(views.IndexData{
		Authenticated:  true,
		Demo:           sess.Demo(),
		UserID:         sess.UserID,
		Query:          query,
		Brand:          brand,
		SellerID:       sellerID,
		Products:       mercadolivre.FilterByBrand(res.Products, brand),
		Mock:           res.Mock,
		FallbackReason: res.FallbackReason,
	}))
}

// Login redirects to the provider, or to the demo login when no real client
// id is configured. The state sent to the provider is kept in the session
// for Callback to check.
func (h *Handler) Login(c echo.Context) error {
	if h.clientID == "" || h.clientID == PlaceholderClientID {
		return c.Redirect(http.StatusFound, "/login-mock")
	}

	state := uuid.NewString()
	u := h.auth.AuthCodeURL(state)
	if u == "" {
		metrics.LoginsTotal.WithLabelValues("oauth", "config_error").Inc()
		return render(c, http.StatusInternalServerError, views.Message(msgConfigTitle, msgConfigTextEmpty))
	}

	id, sess := h.sessions.Load(c)
	sess.OAuthState = state
	if _, err := h.sessions.Save(c, id, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("oauth", "error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "saving session").SetInternal(err)
	}
	return c.Redirect(http.StatusFound, u)
}

// LoginMock starts a demo session under a new session id.
func (h *Handler) LoginMock(c echo.Context) error {
	id, sess := h.sessions.Load(c)
	sess.OAuthState = ""
	sess.SetToken(mercadolivre.Token{AccessToken: mercadolivre.DemoToken})

	if _, err := h.sessions.Rotate(c, id, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("mock", "error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "saving session").SetInternal(err)
	}
	metrics.LoginsTotal.WithLabelValues("mock", "ok").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Callback completes the authorization-code flow.
func (h *Handler) Callback(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		metrics.LoginsTotal.WithLabelValues("oauth", "missing_code").Inc()
		return c.String(http.StatusBadRequest, MsgMissingCode)
	}

	id, sess := h.sessions.Load(c)
	if sess.OAuthState == "" || c.QueryParam("state") != sess.OAuthState {
		metrics.LoginsTotal.WithLabelValues("oauth", "bad_state").Inc()
		h.logger.Warn("callback state mismatch")
		return c.String(http.StatusBadRequest, MsgInvalidState)
	}

	tok, err := h.auth.ExchangeCode(c.Request().Context(), code)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("oauth", "rejected").Inc()
		h.logger.Warn("authorization code exchange failed", "error", err)
		return c.String(http.StatusUnauthorized, MsgAuthFailed+describe(err))
	}

	sess.OAuthState = ""
	sess.SetToken(*tok)
	if _, err := h.sessions.Rotate(c, id, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("oauth", "error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "saving session").SetInternal(err)
	}

	metrics.LoginsTotal.WithLabelValues("oauth", "ok").Inc()
	h.logger.Info("user authenticated", "user_id", tok.UserID)
	return c.Redirect(http.StatusFound, "/")
}

// Logout drops the session.
func (h *Handler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		h.logger.Warn("destroying session failed", "error", err)
	}
	return c.Redirect(http.StatusFound, "/")
}

// describe returns the provider's error_description, or a generic message.
func describe(err error) string {
	var mlErr *mercadolivre.Error
	if errors.As(err, &mlErr) && mlErr.Description != "" {
		return mlErr.Description
	}
	return MsgUnknownError
}

func render(c echo.Context, status int, page views.Page) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return page.Render(c.Response())
}
