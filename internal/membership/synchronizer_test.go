package membership

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"aerodns/internal/engine"
	"aerodns/internal/lists"
	"aerodns/internal/region"
)

// fakeListClient records patches and fails on demand, per (listID, op).
type fakeListClient struct {
	calls []patchCall
	fail  map[string]error
}

type patchCall struct {
	listID string
	op     lists.Op
	value  string
}

func newFakeListClient() *fakeListClient {
	return &fakeListClient{fail: make(map[string]error)}
}

func (c *fakeListClient) failOn(listID string, op lists.Op, err error) {
	c.fail[listID+"/"+string(op)] = err
}

func (c *fakeListClient) Patch(_ context.Context, listID string, op lists.Op, value string) error {
	c.calls = append(c.calls, patchCall{listID: listID, op: op, value: value})
	if err, ok := c.fail[listID+"/"+string(op)]; ok {
		return err
	}
	return nil
}

type SynchronizerSuite struct {
	suite.Suite
	client *fakeListClient
	syncer *Synchronizer
}

func TestSynchronizerSuite(t *testing.T) {
	suite.Run(t, new(SynchronizerSuite))
}

func (s *SynchronizerSuite) SetupTest() {
	s.client = newFakeListClient()
	var err error
	s.syncer, err = New(s.client, map[region.Code]string{
		region.Europe:       "lst_eu1",
		region.NorthAmerica: "lst_na1",
	})
	s.Require().NoError(err)
}

func (s *SynchronizerSuite) TestNewRequiresClient() {
	_, err := New(nil, nil)
	s.Error(err)
}

func (s *SynchronizerSuite) TestEmptyDelta() {
	ops := s.syncer.Apply(context.Background(), engine.Delta{})
	s.Empty(ops)
	s.Empty(s.client.calls)
}

func (s *SynchronizerSuite) TestFirstAssignment() {
	delta := engine.Delta{
		Add: &engine.Membership{ResolverIP: "45.90.28.101", Region: region.Europe},
	}
	ops := s.syncer.Apply(context.Background(), delta)

	s.Require().Len(ops, 1)
	s.Equal(StatusApplied, ops[0].Status)
	s.Equal(lists.OpAppend, ops[0].Op)
	s.Equal("lst_eu1", ops[0].ListID)
	s.False(ops[0].Failed())
}

func (s *SynchronizerSuite) TestMoveRemovesBeforeAdding() {
	delta := engine.Delta{
		Remove: &engine.Membership{ResolverIP: "45.90.28.101", Region: region.Europe},
		Add:    &engine.Membership{ResolverIP: "45.90.28.101", Region: region.NorthAmerica},
	}
	ops := s.syncer.Apply(context.Background(), delta)

	s.Require().Len(ops, 2)
	s.Equal(lists.OpRemove, ops[0].Op)
	s.Equal(lists.OpAppend, ops[1].Op)

	s.Require().Len(s.client.calls, 2)
	s.Equal(patchCall{listID: "lst_eu1", op: lists.OpRemove, value: "45.90.28.101"}, s.client.calls[0])
	s.Equal(patchCall{listID: "lst_na1", op: lists.OpAppend, value: "45.90.28.101"}, s.client.calls[1])
}

func (s *SynchronizerSuite) TestAddRejectionDoesNotAffectRemove() {
	s.client.failOn("lst_na1", lists.OpAppend, &lists.RejectedError{StatusCode: 403, Message: "denied"})

	delta := engine.Delta{
		Remove: &engine.Membership{ResolverIP: "45.90.28.101", Region: region.Europe},
		Add:    &engine.Membership{ResolverIP: "45.90.28.101", Region: region.NorthAmerica},
	}
	ops := s.syncer.Apply(context.Background(), delta)

	s.Require().Len(ops, 2)
	s.Equal(StatusApplied, ops[0].Status, "remove succeeds independently")
	s.Equal(StatusRejected, ops[1].Status)
	s.True(ops[1].Failed())
	s.Error(ops[1].Err)
}

func (s *SynchronizerSuite) TestRemoveFailureStillAttemptsAdd() {
	s.client.failOn("lst_eu1", lists.OpRemove, errors.New("dial tcp: connection refused"))

	delta := engine.Delta{
		Remove: &engine.Membership{ResolverIP: "45.90.28.101", Region: region.Europe},
		Add:    &engine.Membership{ResolverIP: "45.90.28.101", Region: region.NorthAmerica},
	}
	ops := s.syncer.Apply(context.Background(), delta)

	s.Require().Len(ops, 2)
	s.Equal(StatusUnreachable, ops[0].Status)
	s.Equal(StatusApplied, ops[1].Status, "add is attempted despite remove failing")
	s.Len(s.client.calls, 2)
}

func (s *SynchronizerSuite) TestUnconfiguredRegionSkipped() {
	delta := engine.Delta{
		Add: &engine.Membership{ResolverIP: "45.90.28.101", Region: region.Antarctica},
	}
	ops := s.syncer.Apply(context.Background(), delta)

	s.Require().Len(ops, 1)
	s.Equal(StatusSkipped, ops[0].Status)
	s.Error(ops[0].Err)
	s.Empty(s.client.calls, "no request is made for an unconfigured region")
}
