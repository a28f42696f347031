// Package engine implements the region-transition state machine. Given a
// fresh observation and the previously persisted record it decides the new
// record and the minimal membership delta, keeping the aircraft's resolver IP
// in exactly one region list across transitions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aerodns/internal/fleet"
	"aerodns/internal/provider"
	"aerodns/internal/region"
	"aerodns/internal/state"
	pkgerrors "aerodns/pkg/errors"
)

// Membership names one (resolver IP, region) pair to add to or remove from
// the remote store.
type Membership struct {
	ResolverIP string
	Region     region.Code
}

// Delta is the decision artifact for one tick: at most one remove and one
// add. Both present is a move, only add is a first assignment, both nil is a
// no-op.
type Delta struct {
	Remove *Membership
	Add    *Membership
}

// Empty reports whether the delta requires no remote mutation.
func (d Delta) Empty() bool {
	return d.Remove == nil && d.Add == nil
}

// Outcome labels what a reconcile decided, for logging and metrics.
type Outcome string

const (
	// OutcomeNoObservation: aircraft not observable this tick; nothing
	// touched.
	OutcomeNoObservation Outcome = "noop"
	// OutcomeFirstSeen: first real region established; add-only delta.
	OutcomeFirstSeen Outcome = "first_seen"
	// OutcomeUnchanged: same real region as before; metadata refreshed.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeMoved: real region changed; remove+add delta.
	OutcomeMoved Outcome = "moved"
	// OutcomeOverWater: ambiguous reading with an established region; the
	// previous region is retained (hysteresis).
	OutcomeOverWater Outcome = "over_water"
	// OutcomeUnclassified: ambiguous reading with no established region; a
	// placeholder record is written, no delta.
	OutcomeUnclassified Outcome = "unclassified"
)

// Result is the outcome of reconciling one aircraft for one tick.
type Result struct {
	Outcome Outcome
	// State is the record as persisted this tick; nil when the tick was a
	// no-op and the prior record (if any) was left untouched.
	State *state.AircraftState
	Delta Delta
}

// Engine reads and writes the state store around each decision. State is
// persisted before the caller applies the delta remotely: the record reflects
// the engine's belief about the current region even if the remote mutation
// later fails.
type Engine struct {
	store  state.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the timestamp source. Tests use this to pin UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New constructs an Engine.
func New(store state.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("state store is required")
	}
	e := &Engine{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Reconcile applies the decision table to one aircraft.
//
// Priority order:
//  1. no observation: nothing changes, no delta
//  2. sentinel classification over an established region: retain the region,
//     mark over-water, refresh metadata, no delta
//  3. sentinel classification with no established region: write a placeholder
//     record, no delta
//  4. real region, no established region: first assignment, add-only delta
//  5. real region equal to the established one: metadata refresh, no delta
//  6. real region different from the established one: move, remove+add delta
func (e *Engine) Reconcile(ctx context.Context, ac fleet.Aircraft, obs provider.Observation, geo region.Resolution, classified region.Code) (Result, error) {
	if !obs.Found {
		return Result{Outcome: OutcomeNoObservation}, nil
	}

	prev, err := e.store.Get(ctx, ac.Tail)
	hasPrev := true
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			return Result{}, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load aircraft state")
		}
		hasPrev = false
	}
	established := hasPrev && prev.Region.IsReal()

	next := state.AircraftState{
		Tail:      ac.Tail,
		Lat:       obs.Lat,
		Lon:       obs.Lon,
		UpdatedAt: e.now().UTC(),
	}

	var result Result
	switch {
	case classified == region.Unknown && established:
		// Hysteresis: an ambiguous reading must never evict the aircraft
		// from its last known list.
		next.Region = prev.Region
		next.OverWater = true
		result = Result{Outcome: OutcomeOverWater}
		e.logger.Debug("retaining region on ambiguous reading",
			"tail", ac.Tail, "region", prev.Region, "water", geo.Water)

	case classified == region.Unknown:
		// First contact is unclassifiable. The placeholder distinguishes
		// "observed but ambiguous" from "never observed"; it never counts as
		// an established region.
		next.Region = region.Unknown
		next.OverWater = true
		result = Result{Outcome: OutcomeUnclassified}

	case !established:
		next.Region = classified
		result = Result{
			Outcome: OutcomeFirstSeen,
			Delta:   Delta{Add: &Membership{ResolverIP: ac.ResolverIP, Region: classified}},
		}

	case prev.Region == classified:
		next.Region = classified
		result = Result{Outcome: OutcomeUnchanged}

	default:
		next.Region = classified
		result = Result{
			Outcome: OutcomeMoved,
			Delta: Delta{
				Remove: &Membership{ResolverIP: ac.ResolverIP, Region: prev.Region},
				Add:    &Membership{ResolverIP: ac.ResolverIP, Region: classified},
			},
		}
	}

	if err := e.store.Put(ctx, next); err != nil {
		return Result{}, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "persist aircraft state")
	}
	result.State = &next
	return result, nil
}
