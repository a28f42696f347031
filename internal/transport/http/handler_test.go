package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aerodns/internal/audit"
	"aerodns/internal/engine"
	"aerodns/internal/fleet"
	"aerodns/internal/region"
	"aerodns/internal/runner"
	"aerodns/internal/state"
)

type fakeTicker struct {
	results []runner.EntityResult
	calls   int
}

func (f *fakeTicker) Tick(_ context.Context) []runner.EntityResult {
	f.calls++
	return f.results
}

type HandlerSuite struct {
	suite.Suite
	fleet     *fleet.Fleet
	store     *state.InMemoryStore
	ticker    *fakeTicker
	publisher *audit.MemoryPublisher
	server    http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	var err error
	s.fleet, err = fleet.New([]fleet.Aircraft{
		{Tail: "N101AD", ResolverIP: "45.90.28.101"},
		{Tail: "N202AD", ResolverIP: "45.90.28.102"},
	})
	s.Require().NoError(err)

	s.store = state.NewInMemoryStore()
	s.ticker = &fakeTicker{}
	s.publisher = audit.NewMemoryPublisher()

	h := New(s.fleet, s.store, s.ticker, s.publisher, slog.New(slog.DiscardHandler))
	s.server = NewRouter(h)
}

func (s *HandlerSuite) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) seed(tail string, code region.Code) {
	s.Require().NoError(s.store.Put(context.Background(), state.AircraftState{
		Tail:      tail,
		Region:    code,
		UpdatedAt: time.Now().UTC(),
	}))
}

func (s *HandlerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/healthz")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HandlerSuite) TestMetricsExposed() {
	rec := s.do(http.MethodGet, "/metrics")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestFleetListing() {
	rec := s.do(http.MethodGet, "/fleet")
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Aircraft []fleet.Aircraft `json:"aircraft"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Aircraft, 2)
	s.Equal("N101AD", body.Aircraft[0].Tail)
	s.Equal("45.90.28.101", body.Aircraft[0].ResolverIP)
}

func (s *HandlerSuite) TestListStateEmpty() {
	rec := s.do(http.MethodGet, "/state")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"states":[]}`, rec.Body.String())
}

func (s *HandlerSuite) TestGetState() {
	s.seed("N101AD", region.Europe)

	rec := s.do(http.MethodGet, "/state/N101AD")
	s.Equal(http.StatusOK, rec.Code)

	var st state.AircraftState
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &st))
	s.Equal("N101AD", st.Tail)
	s.Equal(region.Europe, st.Region)
}

func (s *HandlerSuite) TestGetStateNotFound() {
	rec := s.do(http.MethodGet, "/state/N999ZZ")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"not_found"}`, rec.Body.String())
}

func (s *HandlerSuite) TestDeleteState() {
	s.seed("N101AD", region.Europe)

	rec := s.do(http.MethodDelete, "/state/N101AD")
	s.Equal(http.StatusNoContent, rec.Code)

	_, err := s.store.Get(context.Background(), "N101AD")
	s.ErrorIs(err, state.ErrNotFound)

	events := s.publisher.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.EventStateDeleted, events[0].Type)
	s.Equal("N101AD", events[0].Tail)
}

func (s *HandlerSuite) TestDeleteStateIdempotent() {
	// No record yet, but the aircraft exists; deletion still succeeds.
	rec := s.do(http.MethodDelete, "/state/N101AD")
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestDeleteStateUnknownAircraft() {
	rec := s.do(http.MethodDelete, "/state/N999ZZ")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestDeleteAllState() {
	s.seed("N101AD", region.Europe)
	s.seed("N202AD", region.NorthAmerica)

	rec := s.do(http.MethodDelete, "/state")
	s.Equal(http.StatusNoContent, rec.Code)

	states, err := s.store.List(context.Background())
	s.Require().NoError(err)
	s.Empty(states)
}

func (s *HandlerSuite) TestTickReportsResults() {
	s.ticker.results = []runner.EntityResult{
		{Tail: "N101AD", Outcome: engine.OutcomeFirstSeen, Region: region.Europe},
		{Tail: "N202AD", Outcome: engine.OutcomeNoObservation},
	}

	rec := s.do(http.MethodPost, "/tick")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.ticker.calls)

	var body tickResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Results, 2)
	s.Equal("first_seen", body.Results[0].Outcome)
	s.Equal("EU", body.Results[0].Region)
	s.Equal("noop", body.Results[1].Outcome)
}
