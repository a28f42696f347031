//go:build integration

package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aerodns/internal/region"
	"aerodns/internal/state"
	"aerodns/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *state.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = state.NewPostgresStore(s.pg.Pool)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.store.DeleteAll(context.Background()))
}

func (s *PostgresStoreSuite) TestUpsertRoundTrip() {
	ctx := context.Background()
	st := state.AircraftState{
		Tail:      "N101AD",
		Region:    region.Europe,
		Lat:       40.6413,
		Lon:       -73.7781,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(s.store.Put(ctx, st))

	st.Region = region.NorthAmerica
	st.OverWater = true
	s.Require().NoError(s.store.Put(ctx, st))

	got, err := s.store.Get(ctx, "N101AD")
	s.Require().NoError(err)
	s.Equal(region.NorthAmerica, got.Region)
	s.True(got.OverWater)
}

func (s *PostgresStoreSuite) TestMissingAndDelete() {
	ctx := context.Background()
	_, err := s.store.Get(ctx, "N999ZZ")
	s.ErrorIs(err, state.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, "N999ZZ"), state.ErrNotFound)

	st := state.AircraftState{Tail: "N101AD", Region: region.Oceania, UpdatedAt: time.Now().UTC()}
	s.Require().NoError(s.store.Put(ctx, st))
	s.Require().NoError(s.store.Delete(ctx, "N101AD"))
}

func (s *PostgresStoreSuite) TestListOrdered() {
	ctx := context.Background()
	for _, tail := range []string{"N303AD", "N101AD", "N202AD"} {
		st := state.AircraftState{Tail: tail, Region: region.Africa, UpdatedAt: time.Now().UTC()}
		s.Require().NoError(s.store.Put(ctx, st))
	}
	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("N101AD", all[0].Tail)
	s.Equal("N303AD", all[2].Tail)
}
