package metrics

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
)

// Prefix is prepended to every meshbotd metric name.
const Prefix = "meshbotd"

// Meter is the global meter used for metrics.
var Meter = metric.Must(global.Meter(Prefix))
