// Package storetest holds the behaviour every snapshot store backend must
// share. Backend packages run it from their own tests.
package storetest

import (
	"context"
	"errors"

	"github.com/stretchr/testify/suite"

	"archipelago/pkg/platform/sentinel"
)

type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// Suite is embedded by backend tests. NewStore must return an empty store.
type Suite struct {
	suite.Suite
	NewStore func() Store
	store    Store
}

func (s *Suite) SetupTest() {
	s.store = s.NewStore()
}

func (s *Suite) TestPutGet() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "archipelago/a", []byte(`{"v":1}`)))
	got, err := s.store.Get(ctx, "archipelago/a")
	s.Require().NoError(err)
	s.JSONEq(`{"v":1}`, string(got))
}

func (s *Suite) TestPutOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "archipelago/a", []byte(`{"v":1}`)))
	s.Require().NoError(s.store.Put(ctx, "archipelago/a", []byte(`{"v":2}`)))
	got, err := s.store.Get(ctx, "archipelago/a")
	s.Require().NoError(err)
	s.JSONEq(`{"v":2}`, string(got))
}

func (s *Suite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "archipelago/missing")
	s.True(errors.Is(err, sentinel.ErrNotFound), "got %v", err)
}

func (s *Suite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "archipelago/a", []byte(`{}`)))
	s.Require().NoError(s.store.Delete(ctx, "archipelago/a"))
	_, err := s.store.Get(ctx, "archipelago/a")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	s.NoError(s.store.Delete(ctx, "archipelago/a"), "deleting a missing key is not an error")
}

func (s *Suite) TestListByPrefix() {
	ctx := context.Background()
	for _, k := range []string{"archipelago/b", "archipelago/a", "other/c", "archipelago_x"} {
		s.Require().NoError(s.store.Put(ctx, k, []byte(`{}`)))
	}
	keys, err := s.store.List(ctx, "archipelago/")
	s.Require().NoError(err)
	s.Equal([]string{"archipelago/a", "archipelago/b"}, keys)

	keys, err = s.store.List(ctx, "none/")
	s.Require().NoError(err)
	s.Empty(keys)
}
