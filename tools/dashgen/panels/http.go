package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the HTTP request rate by
// route.
func RequestRate() *timeseries.PanelBuilder {
	return newTimeseries("Request Rate", "HTTP requests per second by route").
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(mlx_http_requests_total{job=%q}[5m])) by (path)`, Job),
			"{{path}}", "A",
		)).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	b := newTimeseries("Latency Percentiles", "HTTP request duration percentiles").
		Span(TSWidth)

	for i, q := range []string{"0.50", "0.95", "0.99"} {
		b = b.WithTarget(PromQuery(
			fmt.Sprintf(`histogram_quantile(%s, sum(rate(mlx_http_request_duration_seconds_bucket{job=%q}[5m])) by (le))`, q, Job),
			"p"+q[2:],
			string(rune('A'+i)),
		))
	}

	return b.
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return newTimeseries("Error Rate %", "HTTP 5xx error rate as percentage of total requests").
		Span(FullWidth).
		WithTarget(PromQuery(
			`mlx:http_errors:rate5m / mlx:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}
