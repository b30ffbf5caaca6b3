package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MockFallbacks returns a timeseries panel showing searches answered with
// demo products, split by fallback reason.
func MockFallbacks() *timeseries.PanelBuilder {
	return newTimeseries("Demo Fallbacks", "Searches answered with demo products per second by reason").
		Span(TSWidth).
		WithTarget(PromQuery(`mlx:mock_fallbacks:rate5m`, "{{reason}}", "A")).
		Unit("reqps").
		FillOpacity(20).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		DrawStyle(common.GraphDrawStyleBars)
}

// TokenRefreshes returns a timeseries panel showing refresh-and-retry
// attempts after an expired token, by result.
func TokenRefreshes() *timeseries.PanelBuilder {
	return newTimeseries("Token Refreshes", "Refresh-and-retry attempts after a 401 by result").
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(mlx_catalog_token_refreshes_total{job=%q}[1h])) by (result)`, Job),
			"{{result}}", "A",
		))
}

// ProductsReturned returns a bar gauge panel showing how many products
// searches return.
func ProductsReturned() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Products per Search").
		Description("Distribution of products returned per search").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(mlx_catalog_products_returned_bucket{job=%q}[1h])) by (le)`, Job),
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		ColorScheme(ColorSchemePaletteClassic())
}
