package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newRule("mlx-recording-rules", RuleGroup{
		Name: "mlx-recording",
		Rules: []Rule{
			{
				Record: "mlx:http_requests:rate5m",
				Expr:   `sum(rate(mlx_http_requests_total{job="` + Job + `"}[5m]))`,
			},
			{
				Record: "mlx:http_errors:rate5m",
				Expr:   `sum(rate(mlx_http_requests_total{job="` + Job + `",status=~"5.."}[5m]))`,
			},
			{
				Record: "mlx:marketplace_calls:rate5m",
				Expr:   `sum(rate(mlx_marketplace_calls_total{job="` + Job + `"}[5m])) by (operation, outcome)`,
			},
			{
				Record: "mlx:marketplace_errors:rate5m",
				Expr:   `sum(rate(mlx_marketplace_calls_total{job="` + Job + `",outcome!="ok"}[5m]))`,
			},
			{
				Record: "mlx:mock_fallbacks:rate5m",
				Expr:   `sum(rate(mlx_catalog_mock_fallbacks_total{job="` + Job + `"}[5m])) by (reason)`,
			},
		},
	})
}
