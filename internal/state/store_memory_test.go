package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"aerodns/internal/region"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func makeState(tail string, r region.Code) AircraftState {
	return AircraftState{
		Tail:      tail,
		Region:    r,
		Lat:       48.8566,
		Lon:       2.3522,
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (s *InMemoryStoreSuite) TestPutAndGet() {
	ctx := context.Background()
	st := makeState("N101AD", region.Europe)

	require.NoError(s.T(), s.store.Put(ctx, st))

	got, err := s.store.Get(ctx, "N101AD")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), st, got)
}

func (s *InMemoryStoreSuite) TestGetNotFound() {
	_, err := s.store.Get(context.Background(), "N999ZZ")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestPutOverwrites() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.Put(ctx, makeState("N101AD", region.Europe)))

	updated := makeState("N101AD", region.NorthAmerica)
	updated.OverWater = true
	require.NoError(s.T(), s.store.Put(ctx, updated))

	got, err := s.store.Get(ctx, "N101AD")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), region.NorthAmerica, got.Region)
	assert.True(s.T(), got.OverWater)
}

func (s *InMemoryStoreSuite) TestDelete() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.Put(ctx, makeState("N101AD", region.Europe)))

	require.NoError(s.T(), s.store.Delete(ctx, "N101AD"))
	_, err := s.store.Get(ctx, "N101AD")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	err = s.store.Delete(ctx, "N101AD")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDeleteAllAndList() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.Put(ctx, makeState("N202AD", region.Asia)))
	require.NoError(s.T(), s.store.Put(ctx, makeState("N101AD", region.Europe)))

	all, err := s.store.List(ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
	assert.Equal(s.T(), "N101AD", all[0].Tail, "list is ordered by tail")
	assert.Equal(s.T(), "N202AD", all[1].Tail)

	require.NoError(s.T(), s.store.DeleteAll(ctx))
	all, err = s.store.List(ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), all)
}
