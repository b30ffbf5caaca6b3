package main

import "errors"

// generatedHeader is prepended to every YAML artifact.
const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// KnownMetrics is the set of metric names exported by ml-explorer plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"mlx_http_request_duration_seconds": true,
	"mlx_http_requests_total":           true,

	// Health metrics.
	"mlx_healthz_up": true,
	"mlx_readyz_up":  true,

	// Marketplace API metrics.
	"mlx_marketplace_calls_total":           true,
	"mlx_marketplace_call_duration_seconds": true,
	"mlx_marketplace_rate_limit_hits_total": true,
	"mlx_marketplace_quota_used":            true,

	// Catalog metrics.
	"mlx_catalog_mock_fallbacks_total":  true,
	"mlx_catalog_token_refreshes_total": true,
	"mlx_catalog_products_returned":     true,

	// Session metrics.
	"mlx_logins_total": true,

	// Recording rules.
	"mlx:http_requests:rate5m":      true,
	"mlx:http_errors:rate5m":        true,
	"mlx:marketplace_calls:rate5m":  true,
	"mlx:marketplace_errors:rate5m": true,
	"mlx:mock_fallbacks:rate5m":     true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
