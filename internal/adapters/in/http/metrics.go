package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts workflow operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
	retries    *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg; a nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procurement_workflow_operations_total",
				Help: "Workflow operations served over HTTP, by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procurement_workflow_conflict_retries_total",
				Help: "Attempts repeated after a concurrent modification",
			},
			[]string{"operation"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.operations, m.retries} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	_, outcome := errorStatus(err)
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) retried(operation string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(operation).Inc()
}
