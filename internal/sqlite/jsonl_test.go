// Tests for JSONL export, import, and the file helpers behind them.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	writeFile(t, path, strings.Join([]string{
		`{"id":1,"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","favorite":true}`,
		``,
		`   `,
		`{not json`,
		`{"title":"Emma","author":"Jane Austen"}`,
	}, "\n"))

	records, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []bookRecord{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Favorite: true},
		{Title: "Emma", Author: "Jane Austen"},
	}, records)
}

func TestReadJSONL_MissingFile(t *testing.T) {
	_, _, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONL_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	books := []types.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Favorite: true},
		{ID: 2, Title: "Emma & Co", Author: "Jane Austen"},
	}
	require.NoError(t, writeJSONL(path, books))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":1,"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","favorite":true}`+"\n"+
			`{"id":2,"title":"Emma & Co","author":"Jane Austen","genre":"","favorite":false}`+"\n",
		string(data))
}

func TestWriteJSONL_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, writeJSONL(path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()

	src := setupBackend(t, "")
	srcStore, err := src.Books()
	require.NoError(t, err)
	seedBooks(t, srcStore,
		types.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Favorite: true},
		types.Book{Title: "Emma", Author: "Jane Austen", Genre: "Romance"},
	)

	path := filepath.Join(t.TempDir(), "export.jsonl")
	require.NoError(t, src.Export(ctx, path))

	dst := setupBackend(t, "")
	dstStore, err := dst.Books()
	require.NoError(t, err)
	// Occupy an ID so imported books must be renumbered.
	seedBooks(t, dstStore, types.Book{Title: "Ulysses", Author: "James Joyce"})

	n, err := dst.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	books, err := dstStore.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Ulysses", books[0].Title)
	assert.Equal(t, types.Book{ID: books[1].ID, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Favorite: true}, books[1])
	assert.Equal(t, types.Book{ID: books[2].ID, Title: "Emma", Author: "Jane Austen", Genre: "Romance"}, books[2])
	assert.Greater(t, books[1].ID, books[0].ID)
}

func TestImport_SkipsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t, "")

	path := filepath.Join(t.TempDir(), "in.jsonl")
	writeFile(t, path, strings.Join([]string{
		`{"title":"Dune","author":"Frank Herbert"}`,
		`{"title":"","author":"Nobody"}`,
		`{"title":"No Author","author":"  "}`,
		`garbage`,
		`{"title":"  Emma  ","author":"Jane Austen","favorite":true}`,
	}, "\n"))

	n, err := b.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	store, err := b.Books()
	require.NoError(t, err)
	books, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Emma", books[1].Title)
	assert.True(t, books[1].Favorite)
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()

	b := setupBackend(t, "")
	_, err := b.Import(ctx, filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, types.ErrStorage)

	path := filepath.Join(t.TempDir(), "in.jsonl")
	writeFile(t, path, `{"title":"Dune","author":"Frank Herbert"}`)
	require.NoError(t, b.Detach())
	_, err = b.Import(ctx, path)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.Export(ctx, filepath.Join(t.TempDir(), "out.jsonl")), types.ErrDetached)
}
