package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reload outcomes.
const (
	ReloadApplied = "applied"
	ReloadStale   = "stale"
	ReloadFailed  = "failed"
)

// Metrics holds the desk's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	backendRequests *prometheus.CounterVec
	reloads         *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "backend_requests_total",
			Help:      "Requests sent to the resource backend.",
		}, []string{"op", "collection", "outcome"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "reloads_total",
			Help:      "Cache reloads by collection and result.",
		}, []string{"collection", "result"}),
	}
	reg.MustRegister(m.backendRequests, m.reloads)
	return m
}

// ObserveRequest counts one backend call.
func (m *Metrics) ObserveRequest(op, collection string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.backendRequests.WithLabelValues(op, collection, outcome).Inc()
}

// ObserveReload counts one reload result.
func (m *Metrics) ObserveReload(collection, result string) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(collection, result).Inc()
}
