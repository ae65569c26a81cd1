package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_active_connections",
		Help: "Active websocket connections",
	})

	EventsDelivered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_delivered_total",
		Help: "Realtime envelopes written to a live connection",
	}, []string{"type"})

	EventsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_dropped_total",
		Help: "Realtime envelopes dropped instead of delivered",
	}, []string{"reason"})
)

func Init() {
	prometheus.MustRegister(ActiveConnections, EventsDelivered, EventsDropped)
}

// Handler returns the http.Handler for Prometheus scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
