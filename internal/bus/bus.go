// Package bus provides the point-to-point transport between agents.
//
// Delivery is addressed by static agent identifier and is fire-and-forget:
// Send returns once the envelope is handed to the transport, with no
// delivery confirmation and no ordering guarantee across destinations.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the wire frame around every message payload.
type Envelope struct {
	Type          string          `json:"type"`
	Sender        string          `json:"sender"`
	CorrelationID string          `json:"correlation_id"`
	SentAt        time.Time       `json:"sent_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload record for the wire.
func NewEnvelope(msgType, sender, correlationID string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	return Envelope{
		Type:          msgType,
		Sender:        sender,
		CorrelationID: correlationID,
		SentAt:        time.Now().UTC(),
		Payload:       raw,
	}, nil
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// Bus is the transport contract every agent runs on.
type Bus interface {
	// Send delivers an envelope to the named agent address, best effort.
	Send(ctx context.Context, to string, env Envelope) error
	// Subscribe returns the delivery channel for an agent address. The
	// channel closes when the context is cancelled or the bus shuts down.
	Subscribe(ctx context.Context, address string) (<-chan Envelope, error)
	Close() error
}
