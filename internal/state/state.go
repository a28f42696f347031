// Package state persists the last-known-region record per aircraft. Stores
// are interface-driven so the engine stays testable against the in-memory
// implementation while deployments use Redis or Postgres.
package state

import (
	"context"
	"time"

	"aerodns/internal/region"
	pkgerrors "aerodns/pkg/errors"
)

// ErrNotFound is returned when no record exists for a tail number.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "aircraft state not found")

// AircraftState is the durable per-aircraft record. Once Region holds a real
// region it is never overwritten with region.Unknown; ambiguous readings only
// flip OverWater and refresh the metadata.
type AircraftState struct {
	Tail      string      `json:"tail"`
	Region    region.Code `json:"region"`
	OverWater bool        `json:"over_water"`
	Lat       float64     `json:"lat"`
	Lon       float64     `json:"lon"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Store is the per-aircraft state contract. Implementations must treat the
// tail number as the unique key.
type Store interface {
	Get(ctx context.Context, tail string) (AircraftState, error)
	Put(ctx context.Context, st AircraftState) error
	Delete(ctx context.Context, tail string) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context) ([]AircraftState, error)
}
