// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/ml-explorer/tools/dashgen/panels"
)

// UID is the stable dashboard identifier provisioned into Grafana.
const UID = "mlx-overview"

// BuildOverview constructs the ml-explorer overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("ml-explorer Overview").
		Uid(UID).
		Tags([]string{"mlx", "ml-explorer"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Mercado Livre API").
		WithPanel(panels.MarketplaceCalls()).
		WithPanel(panels.MarketplaceLatency()).
		WithPanel(panels.QuotaUsage()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.MockFallbacks()).
		WithPanel(panels.TokenRefreshes()).
		WithPanel(panels.ProductsReturned()))

	b.WithRow(dashboard.NewRowBuilder("Sessions").
		WithPanel(panels.Logins()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
