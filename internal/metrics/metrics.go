// README: Prometheus collectors for itinerary generation (outcomes, latency, tokens).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wanderplan"

// Metrics groups the generation collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tokens   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. When reg is also a Gatherer (a *prometheus.Registry is
// both) Handler serves it; otherwise Handler serves the default gatherer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Itinerary generation requests by outcome kind.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one generation request, prompt to validated itinerary.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"provider", "outcome"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_tokens_total",
			Help:      "Model tokens consumed, split by prompt and response.",
		}, []string{"provider", "direction"}),
		gatherer: prometheus.DefaultGatherer,
	}
	reg.MustRegister(m.requests, m.duration, m.tokens)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// ObserveGeneration records one finished request. outcome is "success" or an error kind.
func (m *Metrics) ObserveGeneration(provider, outcome string, took time.Duration, promptTokens, responseTokens int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, outcome).Inc()
	m.duration.WithLabelValues(provider, outcome).Observe(took.Seconds())
	if promptTokens > 0 {
		m.tokens.WithLabelValues(provider, "prompt").Add(float64(promptTokens))
	}
	if responseTokens > 0 {
		m.tokens.WithLabelValues(provider, "response").Add(float64(responseTokens))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
