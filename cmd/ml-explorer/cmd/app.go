package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/ml-explorer/api/openapi"
	"github.com/donaldgifford/ml-explorer/internal/api/handlers"
	"github.com/donaldgifford/ml-explorer/internal/api/middleware"
	"github.com/donaldgifford/ml-explorer/internal/config"
	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
	"github.com/donaldgifford/ml-explorer/internal/session"
	"github.com/donaldgifford/ml-explorer/internal/telemetry"
	"github.com/donaldgifford/ml-explorer/internal/web"
	"github.com/donaldgifford/ml-explorer/pkg/logger"
)

// app holds the wired server and whatever must be released on shutdown.
type app struct {
	echo    *echo.Echo
	auth    *mercadolivre.AuthService
	catalog *mercadolivre.Catalog
	limiter *mercadolivre.RateLimiter
	store   session.Store
	closers []func() error
}

func (a *app) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newAuthService builds the OAuth client from cfg.
func newAuthService(cfg *config.Config, log *slog.Logger) *mercadolivre.AuthService {
	ml := cfg.MercadoLivre
	return mercadolivre.NewAuthService(
		mercadolivre.Credentials{
			ClientID:     ml.ClientID,
			ClientSecret: ml.ClientSecret,
			RedirectURI:  ml.RedirectURI,
		},
		mercadolivre.WithAuthURL(ml.AuthURL),
		mercadolivre.WithTokenURL(ml.TokenURL),
		mercadolivre.WithScope(ml.Scope),
		mercadolivre.WithHTTPClient(telemetry.HTTPClient(ml.Timeout)),
		mercadolivre.WithAuthLogger(logger.Component(log, "auth")),
	)
}

// newCatalog builds the search client, its rate limiter and the catalog.
func newCatalog(
	cfg *config.Config,
	refresher mercadolivre.TokenRefresher,
	log *slog.Logger,
) (*mercadolivre.Catalog, *mercadolivre.RateLimiter) {
	ml := cfg.MercadoLivre

	searchOpts := []mercadolivre.SearchOption{
		mercadolivre.WithAPIBaseURL(ml.APIBaseURL),
		mercadolivre.WithSiteID(ml.SiteID),
		mercadolivre.WithSearchHTTPClient(telemetry.HTTPClient(ml.Timeout)),
	}

	var limiter *mercadolivre.RateLimiter
	if ml.RateLimit.IsEnabled() {
		limiter = mercadolivre.NewRateLimiter(ml.RateLimit.PerSecond, ml.RateLimit.Burst, ml.RateLimit.DailyLimit)
		searchOpts = append(searchOpts, mercadolivre.WithRateLimiter(limiter))
	}

	var gen mercadolivre.MockGenerator = mercadolivre.FixtureGenerator{}
	if cfg.Catalog.MockGenerator == "random" {
		seed := cfg.Catalog.MockSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano()) //nolint:gosec // demo data only
		}
		gen = mercadolivre.NewRandomGenerator(seed)
	}

	catalog := mercadolivre.NewCatalog(
		mercadolivre.NewSearchClient(searchOpts...),
		refresher,
		mercadolivre.WithMockGenerator(gen),
		mercadolivre.WithMockCount(cfg.Catalog.MockCount),
		mercadolivre.WithCatalogLogger(logger.Component(log, "catalog")),
	)
	return catalog, limiter
}

// newSessionStore opens the configured session backend.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func() error, error) {
	if cfg.Session.Backend != "redis" {
		return session.NewMemoryStore(), func() error { return nil }, nil
	}

	client, err := session.NewRedisClient(ctx, cfg.Session.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	store := session.NewRedisStore(client, session.WithKeyPrefix(cfg.Session.KeyPrefix))
	return store, client.Close, nil
}

// newApp wires every component into an Echo server.
func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	auth := newAuthService(cfg, log)
	catalog, limiter := newCatalog(cfg, auth, log)
	sessions := session.NewManager(store,
		session.WithTTL(cfg.Session.TTL),
		session.WithSecureCookie(cfg.Session.SecureCookie),
		session.WithManagerLogger(logger.Component(log, "session")),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(store))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	web.RegisterRoutes(e, web.NewHandler(auth, catalog, sessions,
		web.WithClientID(cfg.MercadoLivre.ClientID),
		web.WithLogger(logger.Component(log, "web")),
	))

	humaCfg := huma.DefaultConfig("ml-explorer API", Version)
	humaCfg.Info.Description = "Catalog search over Mercado Livre with demo-data fallback."
	api := humaecho.New(e, humaCfg)
	openapi.RegisterRoutes(e, humaCfg.Info.Title)

	handlers.RegisterProductsRoutes(api, handlers.NewProductsHandler(catalog, sessions, logger.Component(log, "api")))
	handlers.RegisterAuthRoutes(api, handlers.NewAuthHandler(auth))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(limiter))

	return &app{
		echo:    e,
		auth:    auth,
		catalog: catalog,
		limiter: limiter,
		store:   store,
		closers: []func() error{closeStore},
	}, nil
}
