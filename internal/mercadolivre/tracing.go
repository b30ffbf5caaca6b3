package mercadolivre

import "go.opentelemetry.io/otel"

// tracer resolves against the global provider, so spans are no-ops until
// telemetry.Setup installs an exporter.
var tracer = otel.Tracer("github.com/donaldgifford/ml-explorer/internal/mercadolivre")
