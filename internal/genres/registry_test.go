package genres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/paths"
)

func TestRegistry_LoadMissingFile(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), paths.GenresFileName))

	list, err := r.Load()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.False(t, r.Exists())
}

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list []string
	}{
		{"defaults", DefaultGenres},
		{"empty", []string{}},
		{"markup characters", []string{"Rock & Roll", "<Weird>", `"Quoted"`}},
		{"unicode", []string{"Ciencia ficción", "Фэнтези"}},
		{"order kept", []string{"Zeta", "Alpha", "Mid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(filepath.Join(t.TempDir(), "sub", paths.GenresFileName))
			require.NoError(t, r.Save(tt.list))
			assert.True(t, r.Exists())

			got, err := r.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.list, got)
		})
	}
}

func TestRegistry_SaveOverwrites(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), paths.GenresFileName))
	require.NoError(t, r.Save([]string{"A", "B", "C"}))
	require.NoError(t, r.Save([]string{"D"}))

	got, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, got)
}

func TestRegistry_LoadFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), paths.GenresFileName)
	content := `<?xml version="1.0" encoding="UTF-8"?>
<genres>
  <genre>Mystery</genre>
  <genre>Sci-Fi</genre>
</genres>
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := NewRegistry(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mystery", "Sci-Fi"}, got)
}

func TestRegistry_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not xml", "Mystery\nSci-Fi\n"},
		{"wrong root", "<books><genre>Mystery</genre></books>"},
		{"truncated", "<genres><genre>Mystery</genre>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), paths.GenresFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewRegistry(path).Load()
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestRegistry_SaveIntoUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewRegistry(filepath.Join(blocker, paths.GenresFileName)).Save([]string{"A"})
	assert.Error(t, err)
}
