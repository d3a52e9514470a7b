package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var logStatements = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "log_statements_total",
		Help: "Number of log statements, differentiated by service and log level.",
	},
	[]string{"service", "level"},
)

// PrometheusHook counts log statements per level.
type PrometheusHook struct {
	service string
}

// NewPrometheusHook returns a hook counting statements under the given service label.
func NewPrometheusHook(serviceName string) PrometheusHook {
	return PrometheusHook{service: serviceName}
}

// Run implements zerolog.Hook.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel {
		return
	}

	logStatements.WithLabelValues(h.service, level.String()).Inc()
}
