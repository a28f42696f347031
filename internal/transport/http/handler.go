// Package httptransport exposes the admin/debug surface: fleet and state
// inspection, state resets, and a manual tick trigger. Handlers are thin
// pass-throughs; all reconciliation logic stays in the runner and engine.
package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aerodns/internal/audit"
	"aerodns/internal/fleet"
	"aerodns/internal/runner"
	"aerodns/internal/state"
	pkgerrors "aerodns/pkg/errors"
)

// Ticker triggers one reconciliation pass on demand. Satisfied by
// *runner.Runner.
type Ticker interface {
	Tick(ctx context.Context) []runner.EntityResult
}

// Handler wires the admin endpoints to the fleet, state store, and runner.
type Handler struct {
	fleet     *fleet.Fleet
	states    state.Store
	ticker    Ticker
	publisher audit.Publisher
	logger    *slog.Logger
}

// New constructs the admin handler. The publisher may be nil.
func New(f *fleet.Fleet, states state.Store, ticker Ticker, publisher audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{fleet: f, states: states, ticker: ticker, publisher: publisher, logger: logger}
}

// NewRouter builds the full admin router, including /metrics and /healthz.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/fleet", h.handleFleet)
	r.Get("/state", h.handleListState)
	r.Get("/state/{tail}", h.handleGetState)
	r.Delete("/state", h.handleDeleteAllState)
	r.Delete("/state/{tail}", h.handleDeleteState)
	r.Post("/tick", h.handleTick)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleFleet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"aircraft": h.fleet.All()})
}

func (h *Handler) handleListState(w http.ResponseWriter, r *http.Request) {
	states, err := h.states.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if states == nil {
		states = []state.AircraftState{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"states": states})
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	tail := chi.URLParam(r, "tail")
	st, err := h.states.Get(r.Context(), tail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) handleDeleteState(w http.ResponseWriter, r *http.Request) {
	tail := chi.URLParam(r, "tail")
	ac, ok := h.fleet.ByTail(tail)
	if !ok {
		h.writeError(w, r, pkgerrors.New(pkgerrors.CodeNotFound, "aircraft not in fleet"))
		return
	}
	if err := h.states.Delete(r.Context(), ac.Tail); err != nil && !errors.Is(err, state.ErrNotFound) {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("aircraft state deleted", "tail", ac.Tail)
	h.emit(r.Context(), audit.Event{
		Type:       audit.EventStateDeleted,
		Tail:       ac.Tail,
		ResolverIP: ac.ResolverIP,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteAllState(w http.ResponseWriter, r *http.Request) {
	if err := h.states.DeleteAll(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("all aircraft state deleted")
	h.emit(r.Context(), audit.Event{Type: audit.EventStateDeleted, Detail: "full reset"})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) emit(ctx context.Context, event audit.Event) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Emit(ctx, event); err != nil {
		h.logger.Warn("transition event emit failed", "type", event.Type, "error", err)
	}
}

func (h *Handler) handleTick(w http.ResponseWriter, r *http.Request) {
	results := h.ticker.Tick(r.Context())
	writeJSON(w, http.StatusOK, newTickResponse(results))
}
