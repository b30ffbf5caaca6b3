package mercadolivre

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/donaldgifford/ml-explorer/internal/metrics"
)

const (
	defaultAuthURL  = "https://auth.mercadolivre.com.br/authorization"
	defaultTokenURL = "https://api.mercadolibre.com/oauth/token" //nolint:gosec // not a credential
	defaultScope    = "offline_access read"
	defaultTimeout  = 15 * time.Second

	userAgent = "ml-explorer/1.0 (+https://github.com/donaldgifford/ml-explorer)"
)

// Credentials are the OAuth2 client settings registered with Mercado Livre.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c Credentials) Trimmed() Credentials {
	return Credentials{
		ClientID:     strings.TrimSpace(c.ClientID),
		ClientSecret: strings.TrimSpace(c.ClientSecret),
		RedirectURI:  strings.TrimSpace(c.RedirectURI),
	}
}

// AuthService implements Authenticator using the Mercado Livre OAuth2
// authorization-code flow. It holds no state beyond its configuration.
type AuthService struct {
	creds    Credentials
	authURL  string
	tokenURL string
	scope    string
	client   *http.Client
	logger   *slog.Logger
}

// AuthOption configures the AuthService.
type AuthOption func(*AuthService)

// WithAuthURL overrides the default authorization endpoint.
func WithAuthURL(u string) AuthOption {
	return func(s *AuthService) {
		s.authURL = u
	}
}

// WithTokenURL overrides the default token endpoint.
func WithTokenURL(u string) AuthOption {
	return func(s *AuthService) {
		s.tokenURL = u
	}
}

// WithScope overrides the requested scope. An empty scope omits the parameter.
func WithScope(scope string) AuthOption {
	return func(s *AuthService) {
		s.scope = scope
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) AuthOption {
	return func(s *AuthService) {
		s.client = c
	}
}

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(s *AuthService) {
		s.logger = l
	}
}

// NewAuthService creates a new AuthService. Credentials are trimmed.
func NewAuthService(creds Credentials, opts ...AuthOption) *AuthService {
	s := &AuthService{
		creds:    creds.Trimmed(),
		authURL:  defaultAuthURL,
		tokenURL: defaultTokenURL,
		scope:    defaultScope,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = withHeaders(s.client, map[string]string{
		"Accept":     "application/json",
		"User-Agent": userAgent,
	})
	return s
}

// Configured reports whether the client id and redirect URI are set.
func (s *AuthService) Configured() bool {
	return s.creds.ClientID != "" && s.creds.RedirectURI != ""
}

// ClientID returns the configured client id.
func (s *AuthService) ClientID() string {
	return s.creds.ClientID
}

func (s *AuthService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.creds.ClientID,
		ClientSecret: s.creds.ClientSecret,
		RedirectURL:  s.creds.RedirectURI,
		Scopes:       strings.Fields(s.scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.authURL,
			TokenURL:  s.tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizationURL returns the provider URL the browser is redirected to.
// It returns "" when the client id or redirect URI is missing.
func (s *AuthService) AuthorizationURL() string {
	return s.AuthCodeURL("")
}

// AuthCodeURL is AuthorizationURL with a state parameter the callback must
// echo back. An empty state is omitted from the URL.
func (s *AuthService) AuthCodeURL(state string) string {
	if !s.Configured() {
		s.logger.Error("authorization URL unavailable", "error", ErrMissingCredentials)
		return ""
	}
	return s.oauthConfig().AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for tokens. The request carries
// exactly the configured redirect URI; the provider rejects any mismatch.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	code = strings.TrimSpace(code)

	ctx, span := tracer.Start(ctx, "mercadolivre.ExchangeCode")
	defer span.End()

	if s.creds.ClientID == "" {
		return nil, s.finish(span, "exchange", &Error{Kind: KindConfig, Err: ErrMissingCredentials})
	}
	if code == "" {
		return nil, s.finish(span, "exchange", &Error{
			Kind:        KindProviderRejected,
			Code:        "invalid_request",
			Description: "authorization code is empty",
		})
	}

	s.logger.Info("exchanging authorization code", "code_prefix", prefix(code, 10))

	start := time.Now()
	tok, err := s.oauthConfig().Exchange(s.clientContext(ctx), code)
	metrics.MarketplaceCallDuration.WithLabelValues("exchange").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, s.finish(span, "exchange", classifyTokenError(err))
	}

	metrics.MarketplaceCallsTotal.WithLabelValues("exchange", "ok").Inc()
	return fromOAuth2(tok), nil
}

// RefreshAccessToken obtains a new access token. When the provider omits a
// new refresh token, the one passed in is kept.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*Token, error) {
	refreshToken = strings.TrimSpace(refreshToken)

	ctx, span := tracer.Start(ctx, "mercadolivre.RefreshAccessToken")
	defer span.End()

	if s.creds.ClientID == "" {
		return nil, s.finish(span, "refresh", &Error{Kind: KindConfig, Err: ErrMissingCredentials})
	}
	if refreshToken == "" {
		return nil, s.finish(span, "refresh", &Error{
			Kind:        KindProviderRejected,
			Code:        "invalid_request",
			Description: "refresh token is empty",
		})
	}

	s.logger.Info("refreshing access token")

	start := time.Now()
	src := s.oauthConfig().TokenSource(
		s.clientContext(ctx),
		&oauth2.Token{RefreshToken: refreshToken},
	)
	tok, err := src.Token()
	metrics.MarketplaceCallDuration.WithLabelValues("refresh").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, s.finish(span, "refresh", classifyTokenError(err))
	}

	metrics.MarketplaceCallsTotal.WithLabelValues("refresh", "ok").Inc()
	return fromOAuth2(tok), nil
}

func (s *AuthService) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.client)
}

// finish records metrics, span status and a log line for a failed token
// call, and returns err unchanged.
func (s *AuthService) finish(span trace.Span, op string, err *Error) error {
	outcome := "error"
	if err.Kind == KindProviderRejected {
		outcome = "rejected"
	}
	metrics.MarketplaceCallsTotal.WithLabelValues(op, outcome).Inc()

	span.SetAttributes(attribute.String("mercadolivre.error_kind", err.Kind.String()))
	span.SetStatus(codes.Error, err.Error())
	s.logger.Error("token request failed", "operation", op, "error", err)
	return err
}

func classifyTokenError(err error) *Error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		e := &Error{
			Kind:        KindProviderRejected,
			Code:        re.ErrorCode,
			Description: re.ErrorDescription,
			Err:         err,
		}
		if re.Response != nil {
			e.Status = re.Response.StatusCode
		}
		if e.Description == "" {
			e.Description = parseProviderMessage(re.Body)
		}
		// Without a provider payload a 5xx is an outage, not a rejection.
		if e.Code == "" && e.Status >= http.StatusInternalServerError {
			e.Kind = KindTransport
		}
		return e
	}
	return &Error{Kind: KindTransport, Err: fmt.Errorf("executing token request: %w", err)}
}

// parseProviderMessage extracts the "message" field some Mercado Livre error
// bodies use instead of error_description.
func parseProviderMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func fromOAuth2(tok *oauth2.Token) *Token {
	t := &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		UserID:       extraString(tok, "user_id"),
		Scope:        extraString(tok, "scope"),
	}
	if n, err := strconv.ParseInt(extraString(tok, "expires_in"), 10, 64); err == nil {
		t.ExpiresIn = n
	}
	return t
}

// extraString renders a raw token-response field as a string. JSON numbers
// (Mercado Livre sends user_id as one) are formatted without exponent.
func extraString(tok *oauth2.Token, key string) string {
	switch v := tok.Extra(key).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// headerTransport sets fixed headers on every outbound request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

// withHeaders returns a shallow copy of c whose transport adds headers.
func withHeaders(c *http.Client, headers map[string]string) *http.Client {
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	cp := *c
	cp.Transport = &headerTransport{base: base, headers: headers}
	return &cp
}
