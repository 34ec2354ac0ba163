// Package agent provides the runtime every agent process runs on: a
// routing table from message type to handler, startup hooks, and a
// dispatch loop over the bus subscription.
//
// Each delivery runs on its own goroutine so one slow network call does
// not stall unrelated messages; handlers therefore own their payload for
// the duration of the call and must not retain it afterwards.
package agent

import (
	"context"
	"fmt"

	"company-intel-agents/internal/bus"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/messages"
)

// HandlerFunc is code bound to one message type within one agent.
type HandlerFunc func(ctx context.Context, m *MessageContext) error

// StartupFunc runs once when the agent's loop starts, before any dispatch.
type StartupFunc func(ctx context.Context) error

type Agent struct {
	address    string
	bus        bus.Bus
	logger     logger.Logger
	handlers   map[string]HandlerFunc
	startup    []StartupFunc
	deliveries <-chan bus.Envelope
}

func New(address string, b bus.Bus, log logger.Logger) *Agent {
	return &Agent{
		address:  address,
		bus:      b,
		logger:   log.With(map[string]interface{}{"agent": address}),
		handlers: make(map[string]HandlerFunc),
	}
}

// Address returns the agent's static bus address.
func (a *Agent) Address() string {
	return a.address
}

// HandleFunc registers the handler for a message type. Exactly one
// handler per type; a second registration replaces the first.
func (a *Agent) HandleFunc(msgType string, h HandlerFunc) {
	a.handlers[msgType] = h
}

// OnStartup registers a hook to run when the agent starts.
func (a *Agent) OnStartup(hook StartupFunc) {
	a.startup = append(a.startup, hook)
}

// Send delivers a message to another agent, fire-and-forget. Transport
// failures are logged, never surfaced: the send contract has no return.
func (a *Agent) Send(ctx context.Context, to, msgType, correlationID string, payload interface{}) {
	env, err := bus.NewEnvelope(msgType, a.address, correlationID, payload)
	if err != nil {
		a.logger.Error("failed to build envelope", map[string]interface{}{
			"messageType": msgType,
			"to":          to,
			"error":       err.Error(),
		})
		return
	}
	if err := a.bus.Send(ctx, to, env); err != nil {
		a.logger.Error("send failed", map[string]interface{}{
			"messageType": msgType,
			"to":          to,
			"error":       err.Error(),
		})
	}
}

// Subscribe establishes the agent's bus subscription without starting
// the dispatch loop. Startup hooks may send the moment Run begins, so a
// fleet must subscribe every agent before running any of them or a
// hook's first message can be published to a peer with no subscription
// yet. Calling Subscribe again is a no-op.
func (a *Agent) Subscribe(ctx context.Context) error {
	if a.deliveries != nil {
		return nil
	}
	deliveries, err := a.bus.Subscribe(ctx, a.address)
	if err != nil {
		return fmt.Errorf("agent %s subscribe: %w", a.address, err)
	}
	a.deliveries = deliveries
	return nil
}

// Run subscribes the agent if Subscribe was not called, runs the
// startup hooks, and dispatches until the context is cancelled or the
// bus shuts down.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.Subscribe(ctx); err != nil {
		return err
	}

	for _, hook := range a.startup {
		if err := hook(ctx); err != nil {
			a.logger.Error("startup hook failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.logger.Info("agent started", map[string]interface{}{
		"handlers": len(a.handlers),
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-a.deliveries:
			if !ok {
				return nil
			}
			a.route(ctx, env)
		}
	}
}

func (a *Agent) route(ctx context.Context, env bus.Envelope) {
	messagesReceived.WithLabelValues(a.address, env.Type).Inc()

	handler, ok := a.handlers[env.Type]
	if !ok {
		// Deliberate policy: unregistered types are logged and dropped.
		messagesDropped.WithLabelValues(a.address, env.Type).Inc()
		a.logger.Warn("no handler registered for message type, dropping", map[string]interface{}{
			"messageType": env.Type,
			"sender":      env.Sender,
		})
		return
	}

	if err := messages.Validate(env.Type, env.Payload); err != nil {
		messagesRejected.WithLabelValues(a.address, env.Type).Inc()
		a.logger.Warn("rejecting message with invalid payload", map[string]interface{}{
			"messageType": env.Type,
			"sender":      env.Sender,
			"error":       err.Error(),
		})
		return
	}

	go a.dispatch(ctx, handler, env)
}

func (a *Agent) dispatch(ctx context.Context, handler HandlerFunc, env bus.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			messagesErrored.WithLabelValues(a.address, env.Type).Inc()
			a.logger.Error("handler panicked", map[string]interface{}{
				"messageType": env.Type,
				"panic":       fmt.Sprint(r),
			})
		}
	}()

	m := &MessageContext{agent: a, env: env}
	if err := handler(ctx, m); err != nil {
		messagesErrored.WithLabelValues(a.address, env.Type).Inc()
		a.logger.Error("handler returned error", map[string]interface{}{
			"messageType": env.Type,
			"sender":      env.Sender,
			"error":       err.Error(),
		})
		return
	}
	messagesHandled.WithLabelValues(a.address, env.Type).Inc()
}

// MessageContext gives a handler access to the delivery it is processing.
type MessageContext struct {
	agent *Agent
	env   bus.Envelope
}

// NewMessageContext builds a context for a synthetic delivery. Intended
// for tests that call a handler without running the dispatch loop.
func NewMessageContext(a *Agent, env bus.Envelope) *MessageContext {
	return &MessageContext{agent: a, env: env}
}

// Sender is the address of the agent that sent this message.
func (m *MessageContext) Sender() string {
	return m.env.Sender
}

// CorrelationID identifies the flow this message belongs to.
func (m *MessageContext) CorrelationID() string {
	return m.env.CorrelationID
}

// Decode unmarshals the payload into v.
func (m *MessageContext) Decode(v interface{}) error {
	return m.env.Decode(v)
}

// Reply sends a message back to the original sender, preserving the
// correlation ID.
func (m *MessageContext) Reply(ctx context.Context, msgType string, payload interface{}) {
	m.agent.Send(ctx, m.env.Sender, msgType, m.env.CorrelationID, payload)
}

// SendTo sends a message to an arbitrary address within the same flow.
func (m *MessageContext) SendTo(ctx context.Context, to, msgType string, payload interface{}) {
	m.agent.Send(ctx, to, msgType, m.env.CorrelationID, payload)
}
