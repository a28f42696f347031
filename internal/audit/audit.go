// Package audit emits structured region-transition events so operators can
// trace why an aircraft's resolver IP moved lists, and spot sync drift.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aerodns/internal/region"
)

// EventType discriminates transition events.
type EventType string

const (
	EventRegionAssigned EventType = "region_assigned"
	EventRegionMoved    EventType = "region_moved"
	EventSyncFailed     EventType = "sync_failed"
	EventStateDeleted   EventType = "state_deleted"
)

// Event is one audit record. From is empty for first assignments.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Tail       string      `json:"tail"`
	ResolverIP string      `json:"resolver_ip,omitempty"`
	From       region.Code `json:"from,omitempty"`
	To         region.Code `json:"to,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Publisher accepts audit events. Implementations must be safe for
// concurrent use; a failing publisher must never block reconciliation.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Stamp fills in ID and Timestamp when absent.
func Stamp(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return event
}
