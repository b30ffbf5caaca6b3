package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MarketplaceCalls returns a timeseries panel showing outbound Mercado Livre
// calls per second by operation and outcome.
func MarketplaceCalls() *timeseries.PanelBuilder {
	return newTimeseries("Marketplace Calls", "Outbound Mercado Livre API calls per second by operation and outcome").
		Span(8).
		WithTarget(PromQuery(`mlx:marketplace_calls:rate5m`, "{{operation}} {{outcome}}", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// MarketplaceLatency returns a timeseries panel showing p95 latency of
// outbound calls per operation.
func MarketplaceLatency() *timeseries.PanelBuilder {
	return newTimeseries("Marketplace Latency p95", "95th percentile duration of outbound calls by operation").
		Span(8).
		WithTarget(PromQuery(
			fmt.Sprintf(`histogram_quantile(0.95, sum(rate(mlx_marketplace_call_duration_seconds_bucket{job=%q}[5m])) by (le, operation))`, Job),
			"{{operation}}", "A",
		)).
		Unit("s")
}

// QuotaUsage returns a timeseries panel showing searches counted in the
// current daily window with thresholds at the budget.
func QuotaUsage() *timeseries.PanelBuilder {
	return newTimeseries("Daily Usage vs Budget", fmt.Sprintf("Searches counted in the current window (budget: %d)", DailyBudget)).
		Span(8).
		WithTarget(PromQuery(sel("mlx_marketplace_quota_used"), "used", "A")).
		Thresholds(ThresholdsGreenYellowRed(float64(DailyBudget)*0.8, float64(DailyBudget))).
		ColorScheme(ColorSchemeThresholds())
}

// LimitHits returns a stat panel showing searches rejected by the daily
// limit in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Searches rejected by the daily limit in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`increase(mlx_marketplace_rate_limit_hits_total{job=%q}[24h])`, Job), "", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
