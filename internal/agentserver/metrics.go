package agentserver

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once

	rpcRequestsTotal *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	toolCallsTotal   *prometheus.CounterVec
	toolCallDuration *prometheus.HistogramVec
)

// RegisterMetrics inicializa las métricas y devuelve el handler de
// /metrics. Idempotente.
func RegisterMetrics(registry prometheus.Registerer) http.Handler {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		rpcRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpc_requests_total",
			Help: "Número total de requests JSON-RPC por método y resultado",
		}, []string{"method", "status"})

		rpcDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rpc_request_duration_seconds",
			Help:    "Latencia de los requests JSON-RPC",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"})

		toolCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Número total de tool calls por tool y resultado",
		}, []string{"tool", "outcome"})

		toolCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tool_call_duration_seconds",
			Help:    "Duración de cada tool call",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"tool"})

		registry.MustRegister(rpcRequestsTotal, rpcDuration, toolCallsTotal, toolCallDuration)
	})

	return promhttp.Handler()
}

func observeRPC(method, status string, seconds float64) {
	if rpcRequestsTotal == nil {
		return
	}
	rpcRequestsTotal.WithLabelValues(method, status).Inc()
	rpcDuration.WithLabelValues(method).Observe(seconds)
}

func observeToolCall(tool, outcome string, seconds float64) {
	if toolCallsTotal == nil {
		return
	}
	toolCallsTotal.WithLabelValues(tool, outcome).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(seconds)
}
