package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"archipelago/internal/snapshot/store/storetest"
)

func TestFSStore(t *testing.T) {
	suite.Run(t, &storetest.Suite{NewStore: func() storetest.Store {
		s, err := New(t.TempDir())
		require.NoError(t, err)
		return s
	}})
}

func TestRejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.Error(t, s.Put(ctx, "../escape", []byte(`{}`)))
	require.Error(t, s.Put(ctx, "/abs", []byte(`{}`)))
	require.Error(t, s.Put(ctx, " ", []byte(`{}`)))
}

func TestListSkipsTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "archipelago/a", []byte(`{}`)))
	require.NoError(t, os.WriteFile(filepath.Join(root, "archipelago", ".tmp-123.json"), []byte(`{`), 0o600))

	keys, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"archipelago/a"}, keys)
}
