package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal config gets defaults",
			yaml: `
mercadolivre:
  client_id: "123"
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8000, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, "123", cfg.MercadoLivre.ClientID)
				assert.Equal(t, "offline_access read", cfg.MercadoLivre.Scope)
				assert.Equal(t, "https://auth.mercadolivre.com.br/authorization", cfg.MercadoLivre.AuthURL)
				assert.Equal(t, "https://api.mercadolibre.com/oauth/token", cfg.MercadoLivre.TokenURL)
				assert.Equal(t, "https://api.mercadolibre.com", cfg.MercadoLivre.APIBaseURL)
				assert.Equal(t, "MLB", cfg.MercadoLivre.SiteID)
				assert.Equal(t, 15*time.Second, cfg.MercadoLivre.Timeout)
				assert.True(t, cfg.MercadoLivre.RateLimit.IsEnabled())
				assert.InDelta(t, 5.0, cfg.MercadoLivre.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 10, cfg.MercadoLivre.RateLimit.Burst)
				assert.Equal(t, "fixture", cfg.Catalog.MockGenerator)
				assert.Equal(t, 4, cfg.Catalog.MockCount)
				assert.Equal(t, "memory", cfg.Session.Backend)
				assert.Equal(t, "mlx:session:", cfg.Session.KeyPrefix)
				assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
				assert.Equal(t, "ml-explorer", cfg.Telemetry.ServiceName)
				assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 0.001)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "full config",
			yaml: `
server:
  host: 127.0.0.1
  port: 9090
mercadolivre:
  client_id: "abc"
  client_secret: "s3cret"
  redirect_uri: "https://example.com/callback"
  site_id: MLA
  rate_limit:
    enabled: false
    daily_limit: 100
catalog:
  mock_generator: random
  mock_count: 8
  mock_seed: 42
session:
  backend: redis
  redis_url: redis://localhost:6379/0
  ttl: 2h
  secure_cookie: true
telemetry:
  otlp_endpoint: localhost:4317
  insecure: true
  sample_ratio: 0.5
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "s3cret", cfg.MercadoLivre.ClientSecret)
				assert.Equal(t, "https://example.com/callback", cfg.MercadoLivre.RedirectURI)
				assert.Equal(t, "MLA", cfg.MercadoLivre.SiteID)
				assert.False(t, cfg.MercadoLivre.RateLimit.IsEnabled())
				assert.Equal(t, int64(100), cfg.MercadoLivre.RateLimit.DailyLimit)
				assert.Equal(t, "random", cfg.Catalog.MockGenerator)
				assert.Equal(t, 8, cfg.Catalog.MockCount)
				assert.Equal(t, uint64(42), cfg.Catalog.MockSeed)
				assert.Equal(t, "redis", cfg.Session.Backend)
				assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
				assert.True(t, cfg.Session.SecureCookie)
				assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.InDelta(t, 0.5, cfg.Telemetry.SampleRatio, 0.001)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "env substitution",
			yaml: `
mercadolivre:
  client_secret: ${TEST_MLX_SECRET}
`,
			envVars: map[string]string{"TEST_MLX_SECRET": "from-env"},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "from-env", cfg.MercadoLivre.ClientSecret)
			},
		},
		{
			name: "ML_ variables override the file and are trimmed",
			yaml: `
mercadolivre:
  client_id: "file-id"
  redirect_uri: "https://file.example.com/callback"
`,
			envVars: map[string]string{
				"ML_CLIENT_ID":     "  env-id\n",
				"ML_CLIENT_SECRET": "env-secret ",
				"ML_REDIRECT_URI":  "https://env.example.com/callback",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "env-id", cfg.MercadoLivre.ClientID)
				assert.Equal(t, "env-secret", cfg.MercadoLivre.ClientSecret)
				assert.Equal(t, "https://env.example.com/callback", cfg.MercadoLivre.RedirectURI)
			},
		},
		{
			name: "blank env value keeps the file value",
			yaml: `
mercadolivre:
  client_id: "file-id"
`,
			envVars: map[string]string{"ML_CLIENT_ID": "   "},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "file-id", cfg.MercadoLivre.ClientID)
			},
		},
		{
			name: "redis url from env satisfies redis backend",
			yaml: `
session:
  backend: redis
`,
			envVars: map[string]string{"ML_REDIS_URL": "redis://cache:6379/1"},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "redis://cache:6379/1", cfg.Session.RedisURL)
			},
		},
		{
			name: "invalid mock generator",
			yaml: `
catalog:
  mock_generator: faker
`,
			wantErr: "catalog.mock_generator must be one of",
		},
		{
			name: "redis backend without url",
			yaml: `
session:
  backend: redis
`,
			wantErr: "session.redis_url is required",
		},
		{
			name: "unknown session backend",
			yaml: `
session:
  backend: memcached
`,
			wantErr: "session.backend must be one of",
		},
		{
			name: "relative redirect uri",
			yaml: `
mercadolivre:
  redirect_uri: /callback
`,
			wantErr: "mercadolivre.redirect_uri must be an absolute URL",
		},
		{
			name: "port out of range",
			yaml: `
server:
  port: 70000
`,
			wantErr: "server.port must be between 1 and 65535",
		},
		{
			name: "invalid log level",
			yaml: `
logging:
  level: verbose
`,
			wantErr: "logging.level must be one of",
		},
		{
			name: "sample ratio out of range",
			yaml: `
telemetry:
  sample_ratio: 2
`,
			wantErr: "telemetry.sample_ratio must be between 0 and 1",
		},
		{
			name:    "malformed yaml",
			yaml:    "server: [",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load(writeConfig(t, tt.yaml))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_MultipleErrorsJoined(t *testing.T) {
	_, err := Load(writeConfig(t, `
catalog:
  mock_generator: bad
logging:
  format: xml
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.mock_generator")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("ML_CLIENT_ID", "env-only")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.MercadoLivre.ClientID)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_MLX_DOTENV_A=from-file\nTEST_MLX_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("TEST_MLX_DOTENV_B", "already-set")
	// Registers cleanup so the loaded value does not leak into other tests.
	t.Setenv("TEST_MLX_DOTENV_A", "")
	require.NoError(t, os.Unsetenv("TEST_MLX_DOTENV_A"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("TEST_MLX_DOTENV_A"))
	assert.Equal(t, "already-set", os.Getenv("TEST_MLX_DOTENV_B"))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv(EnvClientID, "1234")
	t.Setenv(EnvClientSecret, "secret")
	t.Setenv(EnvRedirectURI, "http://localhost:8000/callback")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvOTLPEndpoint, "")

	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1234", cfg.MercadoLivre.ClientID)
	assert.Equal(t, "http://localhost:8000/callback", cfg.MercadoLivre.RedirectURI)
	assert.Equal(t, int64(5000), cfg.MercadoLivre.RateLimit.DailyLimit)
	assert.True(t, cfg.MercadoLivre.RateLimit.IsEnabled())
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, "mlx:session:", cfg.Session.KeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}
