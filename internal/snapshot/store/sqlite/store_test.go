package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"archipelago/internal/snapshot/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &storetest.Suite{NewStore: func() storetest.Store {
		s, err := Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}})
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshots.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "archipelago/a", []byte(`{"v":1}`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Get(ctx, "archipelago/a")
	require.NoError(t, err)
	require.JSONEq(t, `{"v":1}`, string(got))
}

func TestLikeWildcardsInPrefix(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "run_1/a", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, "runX1/b", []byte(`{}`)))

	keys, err := s.List(ctx, "run_1/")
	require.NoError(t, err)
	require.Equal(t, []string{"run_1/a"}, keys)
}
