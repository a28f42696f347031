package audit

import (
	"context"
	"log/slog"
	"sync"
)

// LogPublisher writes events to the process log. It is the default sink when
// no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(_ context.Context, event Event) error {
	event = Stamp(event)
	p.logger.Info("transition event",
		"event_id", event.ID,
		"type", event.Type,
		"tail", event.Tail,
		"resolver_ip", event.ResolverIP,
		"from", event.From,
		"to", event.To,
		"detail", event.Detail,
	)
	return nil
}

// MemoryPublisher collects events in memory for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Stamp(event))
	return nil
}

// Events returns a copy of everything emitted so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event{}, p.events...)
}
