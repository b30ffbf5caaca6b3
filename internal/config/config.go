// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvClientID     = "ML_CLIENT_ID"
	EnvClientSecret = "ML_CLIENT_SECRET"
	EnvRedirectURI  = "ML_REDIRECT_URI"
	EnvRedisURL     = "ML_REDIS_URL"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Config is the top-level application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	MercadoLivre MercadoLivreConfig `yaml:"mercadolivre"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Session      SessionConfig      `yaml:"session"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MercadoLivreConfig defines the OAuth client and API endpoints.
type MercadoLivreConfig struct {
	ClientID     string          `yaml:"client_id"`
	ClientSecret string          `yaml:"client_secret"`
	RedirectURI  string          `yaml:"redirect_uri"`
	Scope        string          `yaml:"scope"`
	AuthURL      string          `yaml:"auth_url"`
	TokenURL     string          `yaml:"token_url"`
	APIBaseURL   string          `yaml:"api_base_url"`
	SiteID       string          `yaml:"site_id"`
	Timeout      time.Duration   `yaml:"timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines outbound catalog call throttling.
type RateLimitConfig struct {
	Enabled    *bool   `yaml:"enabled"` // default: true
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"` // 0 disables the cap
}

// IsEnabled reports whether rate limiting is on.
func (r *RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// CatalogConfig defines the mock fallback.
type CatalogConfig struct {
	MockGenerator string `yaml:"mock_generator"` // fixture, random
	MockCount     int    `yaml:"mock_count"`
	MockSeed      uint64 `yaml:"mock_seed"`
}

// SessionConfig defines where browser sessions live.
type SessionConfig struct {
	Backend      string        `yaml:"backend"` // memory, redis
	RedisURL     string        `yaml:"redis_url"`
	KeyPrefix    string        `yaml:"key_prefix"`
	TTL          time.Duration `yaml:"ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

// TelemetryConfig defines OpenTelemetry export. An empty endpoint disables
// export.
type TelemetryConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	Insecure     bool    `yaml:"insecure"`
	ServiceName  string  `yaml:"service_name"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads and parses a YAML config file, performing environment variable
// substitution, applying ML_* overrides and validating. An empty path
// configures from the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvClientID, &cfg.MercadoLivre.ClientID},
		{EnvClientSecret, &cfg.MercadoLivre.ClientSecret},
		{EnvRedirectURI, &cfg.MercadoLivre.RedirectURI},
		{EnvRedisURL, &cfg.Session.RedisURL},
		{EnvOTLPEndpoint, &cfg.Telemetry.OTLPEndpoint},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && strings.TrimSpace(v) != "" {
			*o.target = v
		}
	}

	// Pasted credentials often carry a trailing newline.
	ml := &cfg.MercadoLivre
	ml.ClientID = strings.TrimSpace(ml.ClientID)
	ml.ClientSecret = strings.TrimSpace(ml.ClientSecret)
	ml.RedirectURI = strings.TrimSpace(ml.RedirectURI)
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyMercadoLivreDefaults(&cfg.MercadoLivre)
	applyCatalogDefaults(&cfg.Catalog)
	applySessionDefaults(&cfg.Session)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8000
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyMercadoLivreDefaults(m *MercadoLivreConfig) {
	if m.Scope == "" {
		m.Scope = "offline_access read"
	}
	if m.AuthURL == "" {
		m.AuthURL = "https://auth.mercadolivre.com.br/authorization"
	}
	if m.TokenURL == "" {
		m.TokenURL = "https://api.mercadolibre.com/oauth/token" //nolint:gosec // not a credential
	}
	if m.APIBaseURL == "" {
		m.APIBaseURL = "https://api.mercadolibre.com"
	}
	if m.SiteID == "" {
		m.SiteID = "MLB"
	}
	if m.Timeout == 0 {
		m.Timeout = 15 * time.Second
	}
	applyRateLimitDefaults(&m.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.MockGenerator == "" {
		c.MockGenerator = "fixture"
	}
	if c.MockCount == 0 {
		c.MockCount = 4
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.Backend == "" {
		s.Backend = "memory"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "mlx:session:"
	}
	if s.TTL == 0 {
		s.TTL = 24 * time.Hour
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "ml-explorer"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if u := cfg.MercadoLivre.RedirectURI; u != "" {
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, fmt.Errorf("mercadolivre.redirect_uri must be an absolute URL (got %q)", u))
		}
	}

	rl := cfg.MercadoLivre.RateLimit
	if rl.PerSecond < 0 || rl.Burst < 0 || rl.DailyLimit < 0 {
		errs = append(errs, errors.New("mercadolivre.rate_limit values must not be negative"))
	}

	switch cfg.Catalog.MockGenerator {
	case "fixture", "random":
	default:
		errs = append(errs, fmt.Errorf(
			"catalog.mock_generator must be one of: fixture, random (got %q)",
			cfg.Catalog.MockGenerator,
		))
	}
	if cfg.Catalog.MockCount < 0 {
		errs = append(errs, errors.New("catalog.mock_count must not be negative"))
	}

	switch cfg.Session.Backend {
	case "memory":
	case "redis":
		if cfg.Session.RedisURL == "" {
			errs = append(errs, errors.New("session.redis_url is required when backend is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"session.backend must be one of: memory, redis (got %q)",
			cfg.Session.Backend,
		))
	}

	if r := cfg.Telemetry.SampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1 (got %g)", r))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
