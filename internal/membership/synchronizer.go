// Package membership applies region-transition deltas against the remote
// list store. The two sides of a move are independent partial updates: remove
// is attempted before add, but a failure on either side never suppresses the
// other, and nothing is retried within the tick.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"aerodns/internal/engine"
	"aerodns/internal/lists"
	"aerodns/internal/platform/metrics"
	"aerodns/internal/region"
)

// Status is the outcome of one remote partial update.
type Status string

const (
	// StatusApplied: the store confirmed the membership change.
	StatusApplied Status = "applied"
	// StatusRejected: the store was reachable but refused the mutation.
	StatusRejected Status = "rejected"
	// StatusUnreachable: transport-level failure talking to the store.
	StatusUnreachable Status = "unreachable"
	// StatusSkipped: the region has no configured list ID; nothing was
	// attempted. This is a configuration error, not a runtime condition.
	StatusSkipped Status = "skipped"
)

// Operation reports one attempted (or skipped) partial update.
type Operation struct {
	Op     lists.Op
	Region region.Code
	ListID string
	Value  string
	Status Status
	Err    error
}

// Failed reports whether the operation did not take effect remotely.
func (o Operation) Failed() bool {
	return o.Status != StatusApplied
}

// Synchronizer owns the region→list mapping and the list store client.
type Synchronizer struct {
	client  lists.Client
	listIDs map[region.Code]string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Synchronizer) {
		s.metrics = m
	}
}

// New constructs a Synchronizer. The listIDs table maps each real region to
// its remote list; regions may be absent, in which case their mutations are
// skipped with a warning.
func New(client lists.Client, listIDs map[region.Code]string, opts ...Option) (*Synchronizer, error) {
	if client == nil {
		return nil, fmt.Errorf("list store client is required")
	}
	s := &Synchronizer{
		client:  client,
		listIDs: listIDs,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Apply issues the delta's partial updates in remove-before-add order and
// reports each outcome independently. An empty delta returns no operations.
func (s *Synchronizer) Apply(ctx context.Context, delta engine.Delta) []Operation {
	var ops []Operation
	if delta.Remove != nil {
		ops = append(ops, s.apply(ctx, lists.OpRemove, *delta.Remove))
	}
	if delta.Add != nil {
		ops = append(ops, s.apply(ctx, lists.OpAppend, *delta.Add))
	}
	return ops
}

func (s *Synchronizer) apply(ctx context.Context, op lists.Op, m engine.Membership) Operation {
	out := Operation{Op: op, Region: m.Region, Value: m.ResolverIP}

	listID, ok := s.listIDs[m.Region]
	if !ok || listID == "" {
		out.Status = StatusSkipped
		out.Err = fmt.Errorf("no list configured for region %s", m.Region)
		s.logger.Warn("skipping list mutation, region has no configured list",
			"op", op, "region", m.Region, "resolver_ip", m.ResolverIP)
		s.metrics.IncRemoteMutation(string(op), string(StatusSkipped))
		return out
	}
	out.ListID = listID

	err := s.client.Patch(ctx, listID, op, m.ResolverIP)
	switch {
	case err == nil:
		out.Status = StatusApplied
	case isRejected(err):
		out.Status = StatusRejected
		out.Err = err
		s.logger.Warn("list store rejected mutation",
			"op", op, "list_id", listID, "region", m.Region,
			"resolver_ip", m.ResolverIP, "error", err)
	default:
		out.Status = StatusUnreachable
		out.Err = err
		s.logger.Warn("list store unreachable",
			"op", op, "list_id", listID, "region", m.Region,
			"resolver_ip", m.ResolverIP, "error", err)
	}
	s.metrics.IncRemoteMutation(string(op), string(out.Status))
	return out
}

func isRejected(err error) bool {
	var rej *lists.RejectedError
	return errors.As(err, &rej)
}
