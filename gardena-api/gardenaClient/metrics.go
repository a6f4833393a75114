package gardenaClient

import "github.com/prometheus/client_golang/prometheus"

type hubMetrics struct {
	requests *prometheus.CounterVec
}

func newHubMetrics(reg prometheus.Registerer) *hubMetrics {
	m := &hubMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gardena_api_requests_total",
				Help: "Requests sent to the Gardena API.",
			},
			[]string{"endpoint", "code"}),
	}
	reg.MustRegister(m.requests)
	return m
}

func (m *hubMetrics) observe(endpoint, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, code).Inc()
}
