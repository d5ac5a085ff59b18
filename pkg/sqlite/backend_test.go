package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestNewBackend_Lifecycle(t *testing.T) {
	ctx := context.Background()
	catalogue := sqlite.NewBackend()

	_, err := catalogue.Books()
	assert.ErrorIs(t, err, types.ErrDetached)

	require.NoError(t, catalogue.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { catalogue.Detach() })

	store, err := catalogue.Books()
	require.NoError(t, err)

	id, err := store.Create(ctx, "Dune", "Frank Herbert", "Sci-Fi")
	require.NoError(t, err)

	books, err := store.Search(ctx, "")
	require.NoError(t, err)
	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, books)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
}
