// Package runner drives one reconciliation tick across the whole fleet:
// observe, geocode, classify, reconcile, synchronize, publish. One aircraft's
// failure never aborts the tick for the rest.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"aerodns/internal/audit"
	"aerodns/internal/engine"
	"aerodns/internal/fleet"
	"aerodns/internal/membership"
	"aerodns/internal/platform/metrics"
	"aerodns/internal/provider"
	"aerodns/internal/region"
)

// EntityResult is the per-aircraft outcome log for one tick.
type EntityResult struct {
	Tail       string                 `json:"tail"`
	Outcome    engine.Outcome         `json:"outcome"`
	Region     region.Code            `json:"region,omitempty"`
	OverWater  bool                   `json:"over_water,omitempty"`
	Operations []membership.Operation `json:"-"`
	Err        error                  `json:"-"`
}

// Runner wires the reconciliation pipeline for the configured fleet.
type Runner struct {
	fleet       *fleet.Fleet
	location    provider.LocationClient
	geocode     provider.GeocodeClient
	engine      *engine.Engine
	syncer      *membership.Synchronizer
	publisher   audit.Publisher
	logger      *slog.Logger
	metrics     *metrics.Metrics
	parallelism int
	tracer      trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func WithPublisher(p audit.Publisher) Option {
	return func(r *Runner) {
		r.publisher = p
	}
}

// WithParallelism bounds how many aircraft reconcile concurrently. Safe
// because resolver IPs are unique and region lists are disjoint, so two
// aircraft never contend on the same (list, value) pair.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// New constructs a Runner.
func New(f *fleet.Fleet, location provider.LocationClient, geocode provider.GeocodeClient, eng *engine.Engine, syncer *membership.Synchronizer, opts ...Option) (*Runner, error) {
	if f == nil {
		return nil, fmt.Errorf("fleet is required")
	}
	if location == nil || geocode == nil {
		return nil, fmt.Errorf("location and geocode clients are required")
	}
	if eng == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if syncer == nil {
		return nil, fmt.Errorf("synchronizer is required")
	}
	r := &Runner{
		fleet:       f,
		location:    location,
		geocode:     geocode,
		engine:      eng,
		syncer:      syncer,
		logger:      slog.Default(),
		parallelism: 1,
		tracer:      otel.Tracer("aerodns/internal/runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Tick reconciles every aircraft once and returns the per-aircraft outcome
// log in fleet order.
func (r *Runner) Tick(ctx context.Context) []EntityResult {
	start := time.Now()
	tickID := uuid.NewString()
	logger := r.logger.With("tick_id", tickID)

	ctx, span := r.tracer.Start(ctx, "runner.Tick",
		trace.WithAttributes(
			attribute.String("tick.id", tickID),
			attribute.Int("fleet.size", r.fleet.Size()),
		))
	defer span.End()

	aircraft := r.fleet.All()
	results := make([]EntityResult, len(aircraft))

	var g errgroup.Group
	g.SetLimit(r.parallelism)
	for i, ac := range aircraft {
		g.Go(func() error {
			results[i] = r.reconcileOne(ctx, logger, ac)
			return nil
		})
	}
	_ = g.Wait()

	r.metrics.ObserveTick(time.Since(start))
	logger.Info("tick complete",
		"fleet_size", len(aircraft),
		"duration", time.Since(start),
	)
	return results
}

func (r *Runner) reconcileOne(ctx context.Context, logger *slog.Logger, ac fleet.Aircraft) EntityResult {
	ctx, span := r.tracer.Start(ctx, "runner.reconcileOne",
		trace.WithAttributes(attribute.String("aircraft.tail", ac.Tail)))
	defer span.End()

	result := EntityResult{Tail: ac.Tail}

	obs, err := r.location.Position(ctx, ac.Tail)
	if err != nil {
		// Provider failure degrades to "not observable"; the record and the
		// remote lists stay as they are until the feed recovers.
		logger.Warn("location lookup failed, skipping aircraft",
			"tail", ac.Tail, "error", err)
		obs = provider.Observation{Found: false}
		result.Err = err
	}

	var geo region.Resolution
	if obs.Found {
		geo, err = r.geocode.Reverse(ctx, obs.Lat, obs.Lon)
		if err != nil {
			// Unresolved geography classifies to the sentinel; hysteresis
			// keeps the last known region.
			logger.Warn("reverse geocode failed, treating as unresolved",
				"tail", ac.Tail, "error", err)
			geo = region.Resolution{}
			result.Err = err
		}
	}

	classified := region.Classify(geo)

	res, err := r.engine.Reconcile(ctx, ac, obs, geo, classified)
	if err != nil {
		logger.Error("reconcile failed", "tail", ac.Tail, "error", err)
		r.metrics.IncReconcileOutcome("error")
		result.Outcome = engine.Outcome("error")
		result.Err = err
		return result
	}

	result.Outcome = res.Outcome
	if res.State != nil {
		result.Region = res.State.Region
		result.OverWater = res.State.OverWater
	}
	r.metrics.IncReconcileOutcome(string(res.Outcome))

	result.Operations = r.syncer.Apply(ctx, res.Delta)
	r.publish(ctx, logger, ac, res, result.Operations)
	return result
}

func (r *Runner) publish(ctx context.Context, logger *slog.Logger, ac fleet.Aircraft, res engine.Result, ops []membership.Operation) {
	switch res.Outcome {
	case engine.OutcomeFirstSeen:
		r.emit(ctx, logger, audit.Event{
			Type:       audit.EventRegionAssigned,
			Tail:       ac.Tail,
			ResolverIP: ac.ResolverIP,
			To:         res.Delta.Add.Region,
		})
	case engine.OutcomeMoved:
		r.metrics.IncRegionTransition(res.Delta.Remove.Region.String(), res.Delta.Add.Region.String())
		r.emit(ctx, logger, audit.Event{
			Type:       audit.EventRegionMoved,
			Tail:       ac.Tail,
			ResolverIP: ac.ResolverIP,
			From:       res.Delta.Remove.Region,
			To:         res.Delta.Add.Region,
		})
	}

	for _, op := range ops {
		if !op.Failed() {
			continue
		}
		r.emit(ctx, logger, audit.Event{
			Type:       audit.EventSyncFailed,
			Tail:       ac.Tail,
			ResolverIP: ac.ResolverIP,
			To:         op.Region,
			Detail:     fmt.Sprintf("%s %s: %v", op.Op, op.Status, op.Err),
		})
	}
}

func (r *Runner) emit(ctx context.Context, logger *slog.Logger, event audit.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Emit(ctx, event); err != nil {
		logger.Warn("transition event emit failed",
			"tail", event.Tail, "type", event.Type, "error", err)
	}
}
