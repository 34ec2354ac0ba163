package bus

import (
	"context"
	"sync"
)

// InProcBus is a process-local transport with the same best-effort
// semantics as the Redis bus. Used for single-process runs and tests.
type InProcBus struct {
	mu     sync.Mutex
	subs   map[string][]chan Envelope
	closed bool
}

func NewInProcBus() *InProcBus {
	return &InProcBus{subs: make(map[string][]chan Envelope)}
}

func (b *InProcBus) Send(_ context.Context, to string, env Envelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subs[to] {
		// Non-blocking: a subscriber with a full buffer loses the
		// message, mirroring pub/sub with a slow consumer.
		select {
		case ch <- env:
		default:
		}
	}
	return nil
}

func (b *InProcBus) Subscribe(ctx context.Context, address string) (<-chan Envelope, error) {
	ch := make(chan Envelope, 64)

	b.mu.Lock()
	b.subs[address] = append(b.subs[address], ch)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[address]
		for i, c := range subs {
			if c == ch {
				b.subs[address] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch, nil
}

func (b *InProcBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.subs = make(map[string][]chan Envelope)
	return nil
}
