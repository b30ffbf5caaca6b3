package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// ml-explorer operational monitoring.
func AlertRules() PrometheusRule {
	return newRule("mlx-alerts", RuleGroup{
		Name: "mlx-alerts",
		Rules: []Rule{
			{
				Alert:  "MlxDown",
				Expr:   `absent(up{job="` + Job + `"})`,
				For:    "2m",
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "ml-explorer is down",
					"description": "The ml-explorer job has been absent for more than 2 minutes.",
				},
			},
			{
				Alert:  "MlxReadinessDown",
				Expr:   `mlx_readyz_up{job="` + Job + `"} == 0`,
				For:    "2m",
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "ml-explorer session store is unreachable",
					"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
				},
			},
			{
				Alert:  "MlxHighErrorRate",
				Expr:   `mlx:http_errors:rate5m / mlx:http_requests:rate5m > 0.05`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "High HTTP error rate on ml-explorer",
					"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
				},
			},
			{
				Alert:  "MlxMarketplaceErrors",
				Expr:   `mlx:marketplace_errors:rate5m > 0.1`,
				For:    "10m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Mercado Livre calls are failing",
					"description": "Outbound calls have been failing at more than 0.1/s for 10 minutes. Searches are served demo data.",
				},
			},
			{
				Alert:  "MlxQuotaHigh",
				Expr:   `mlx_marketplace_quota_used{job="` + Job + `"} > 4000`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Search usage is above 80% of the daily budget",
					"description": "More than 4000 searches have been counted in the current daily window.",
				},
			},
			{
				Alert:  "MlxLimitReached",
				Expr:   `increase(mlx_marketplace_rate_limit_hits_total{job="` + Job + `"}[5m]) > 0`,
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "Daily search limit reached",
					"description": "Searches are being rejected by the daily limit and answered with demo data until the window resets.",
				},
			},
			{
				Alert:  "MlxRefreshFailures",
				Expr:   `increase(mlx_catalog_token_refreshes_total{job="` + Job + `",result="failed"}[15m]) > 3`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Token refreshes are failing",
					"description": "Users with expired tokens are falling back to demo data. Check the client credentials.",
				},
			},
		},
	})
}
