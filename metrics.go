package main

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	relayConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signal_relay_connections_active",
		Help: "Currently open peer connections.",
	})
	relayRoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signal_relay_rooms_active",
		Help: "Rooms currently registered.",
	})
	relayMessagesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_relay_messages_relayed_total",
		Help: "Opaque signaling messages forwarded (targeted or broadcast).",
	})
	relayProtocolErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_relay_protocol_errors_total",
		Help: "Error envelopes sent back to clients.",
	})
	relayPeersEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_relay_peers_evicted_total",
		Help: "Connections terminated by the reaper for idleness.",
	})
	relayRoomsReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_relay_rooms_reaped_total",
		Help: "Empty rooms deleted by the reaper.",
	})
)

// serveMetrics exposes /metrics on its own listener so the relay port
// stays unauthenticated-public and the metrics port can stay internal.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("metrics server error: %v", err)
	}
}
