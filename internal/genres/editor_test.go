package genres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_Add(t *testing.T) {
	tests := []struct {
		name    string
		start   []string
		add     string
		want    []string
		wantErr error
	}{
		{"appends", []string{"Mystery"}, "Poetry", []string{"Mystery", "Poetry"}, nil},
		{"trims", []string{}, "  Poetry \t", []string{"Poetry"}, nil},
		{"rejects blank", []string{"Mystery"}, "   ", []string{"Mystery"}, ErrEmptyName},
		{"rejects duplicate", []string{"Mystery"}, "Mystery", []string{"Mystery"}, ErrDuplicate},
		{"duplicate after trim", []string{"Mystery"}, " Mystery ", []string{"Mystery"}, ErrDuplicate},
		{"case differs is distinct", []string{"Mystery"}, "mystery", []string{"Mystery", "mystery"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(tt.start)
			err := e.Add(tt.add)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, e.List())
		})
	}
}

func TestEditor_Remove(t *testing.T) {
	e := NewEditor([]string{"Fiction", "Mystery", "Poetry", "Sci-Fi"})

	assert.Equal(t, 2, e.Remove("Mystery", "Sci-Fi", "Absent"))
	assert.Equal(t, []string{"Fiction", "Poetry"}, e.List())

	assert.Equal(t, 0, e.Remove())
	assert.Equal(t, 0, e.Remove("Nope"))
	assert.Equal(t, []string{"Fiction", "Poetry"}, e.List())
}

func TestEditor_DoesNotAliasInput(t *testing.T) {
	start := []string{"Fiction", "Mystery"}
	e := NewEditor(start)
	e.Remove("Fiction")
	require.NoError(t, e.Add("Poetry"))

	assert.Equal(t, []string{"Fiction", "Mystery"}, start)

	out := e.List()
	out[0] = "changed"
	assert.Equal(t, []string{"Mystery", "Poetry"}, e.List())
}

func TestFilterChoices(t *testing.T) {
	assert.Equal(t, []string{"-", "Mystery", "Sci-Fi"}, FilterChoices([]string{"Mystery", "Sci-Fi"}))
	assert.Equal(t, []string{"-"}, FilterChoices(nil))
}

func TestDefaultGenres_Unique(t *testing.T) {
	e := NewEditor(nil)
	for _, g := range DefaultGenres {
		require.NoError(t, e.Add(g))
	}
	assert.Equal(t, DefaultGenres, e.List())
}
