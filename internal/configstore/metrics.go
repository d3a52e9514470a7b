package configstore

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writes     *prometheus.CounterVec //nolint:gochecknoglobals
	writesOnce sync.Once              //nolint:gochecknoglobals
)

func writeCounter() *prometheus.CounterVec {
	writesOnce.Do(func() {
		writes = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settings_writes_total",
				Help: "Number of settings writes, differentiated by scope and result kind.",
			},
			[]string{"scope", "result"},
		)
	})

	return writes
}

// observeWrite counts a write attempt. result is "ok" or the error kind.
func observeWrite(scope string, err error) {
	result := "ok"
	if err != nil {
		result = string(KindOf(err))
	}

	writeCounter().WithLabelValues(scope, result).Inc()
}
