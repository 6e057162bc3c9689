package fieldserv

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the server's attached Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	Coherence      prometheus.Gauge
	IntegratedInfo prometheus.Gauge
	Phase          prometheus.Gauge
	Samples        prometheus.Counter
	WSClients      prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Coherence: factory.NewGauge(prometheus.GaugeOpts{
			Name: "field_coherence",
			Help: "Latest coherence channel value in [0,1].",
		}),
		IntegratedInfo: factory.NewGauge(prometheus.GaugeOpts{
			Name: "field_integrated_info",
			Help: "Latest integrated-information channel value in [0,1].",
		}),
		Phase: factory.NewGauge(prometheus.GaugeOpts{
			Name: "field_phase_radians",
			Help: "Latest phase angle, normalized to [0,2pi).",
		}),
		Samples: factory.NewCounter(prometheus.CounterOpts{
			Name: "field_samples_total",
			Help: "Samples generated since startup.",
		}),
		WSClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "field_websocket_clients",
			Help: "Websocket subscribers currently connected.",
		}),
	}
}

// Handler serves the /metrics endpoint off the attached registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
