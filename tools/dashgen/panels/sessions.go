package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Logins returns a timeseries panel showing login attempts by mode and
// result.
func Logins() *timeseries.PanelBuilder {
	return newTimeseries("Logins", "Login attempts per hour by mode (oauth, mock) and result").
		Span(FullWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(mlx_logins_total{job=%q}[1h])) by (mode, result)`, Job),
			"{{mode}} {{result}}", "A",
		)).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip())
}
