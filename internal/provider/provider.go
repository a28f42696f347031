// Package provider holds the outbound clients for the location and
// reverse-geocode services. Both degrade gracefully: a provider failure is a
// normal per-tick outcome, never a reason to abort reconciliation.
package provider

import (
	"context"
	"fmt"
	"time"

	"aerodns/internal/region"
)

// Observation is one location sample for one aircraft. Found=false means the
// aircraft is not currently observable (on the ground, out of coverage, or
// the provider has no fresh data); coordinates are only meaningful when
// Found is true.
type Observation struct {
	Found       bool      `json:"found"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Callsign    string    `json:"callsign,omitempty"`
	Altitude    float64   `json:"altitude,omitempty"`
	GroundSpeed float64   `json:"ground_speed,omitempty"`
	ObservedAt  time.Time `json:"observed_at,omitempty"`
}

// LocationClient resolves the current position of one aircraft.
type LocationClient interface {
	Position(ctx context.Context, tail string) (Observation, error)
}

// GeocodeClient resolves coordinates to political geography. Implementations
// return a zero Resolution together with an error on failure; callers treat
// that as "unresolved" rather than fatal.
type GeocodeClient interface {
	Reverse(ctx context.Context, lat, lon float64) (region.Resolution, error)
}

// Category normalizes provider failures for logging and metrics.
type Category string

const (
	CategoryTimeout  Category = "timeout"
	CategoryOutage   Category = "outage"
	CategoryBadData  Category = "bad_data"
	CategoryRejected Category = "rejected"
)

// Error wraps a provider failure with its normalized category.
type Error struct {
	Provider   string
	Category   Category
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.Provider, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func newError(provider string, category Category, message string, underlying error) *Error {
	return &Error{Provider: provider, Category: category, Message: message, Underlying: underlying}
}
