package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_messages_received_total",
		Help: "Messages delivered to an agent, by type.",
	}, []string{"agent", "type"})

	messagesHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_messages_handled_total",
		Help: "Messages whose handler completed without error.",
	}, []string{"agent", "type"})

	messagesErrored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_messages_errored_total",
		Help: "Messages whose handler returned an error or panicked.",
	}, []string{"agent", "type"})

	messagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_messages_dropped_total",
		Help: "Messages dropped for having no registered handler.",
	}, []string{"agent", "type"})

	messagesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_messages_rejected_total",
		Help: "Messages rejected by payload schema validation.",
	}, []string{"agent", "type"})
)
