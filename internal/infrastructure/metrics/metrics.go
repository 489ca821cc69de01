package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "userapi"

// NewCounter registers the app-wide counter on reg, or on the default
// registry when reg is nil. Events are told apart by the "result" label.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "general_counters",
			Help:      "User lifecycle and request counters keyed by result.",
		},
		[]string{"result"})
}
