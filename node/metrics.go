package node

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goresp",
			Subsystem: "protocol",
			Name:      "frames_decoded_total",
			Help:      "Request frames decoded from clients.",
		},
	)
	protocolErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goresp",
			Subsystem: "protocol",
			Name:      "errors_total",
			Help:      "Protocol errors that closed a client connection.",
		},
		[]string{"kind"},
	)
	connectionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "goresp",
			Subsystem: "server",
			Name:      "connections_accepted_total",
			Help:      "Client connections accepted.",
		},
	)
	commandsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goresp",
			Subsystem: "server",
			Name:      "commands_total",
			Help:      "Commands executed, by command name.",
		},
		[]string{"command"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, protocolErrors, connectionsAccepted, commandsProcessed)
	})
}

func recordFrameDecoded() {
	RegisterMetrics()
	framesDecoded.Inc()
}

func recordProtocolError(kind string) {
	RegisterMetrics()
	protocolErrors.WithLabelValues(kind).Inc()
}

func recordConnection() {
	RegisterMetrics()
	connectionsAccepted.Inc()
}

func recordCommand(name string) {
	RegisterMetrics()
	commandsProcessed.WithLabelValues(name).Inc()
}
