package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsOrder(t *testing.T) {
	var names []string
	for _, f := range Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"title", "author", "genre", "favorite"}, names)
}

func TestFieldsReturnsCopy(t *testing.T) {
	got := Fields()
	got[0] = FieldFavorite
	assert.Equal(t, "title", Fields()[0].Name)
}

func TestLookupField(t *testing.T) {
	f, err := LookupField("Author")
	require.NoError(t, err)
	assert.Equal(t, "author", f.Name)

	_, err = LookupField("id")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFieldGetSet(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   any
		want    any
		wantErr error
	}{
		{name: "title text", field: FieldTitle, value: "New Title", want: "New Title"},
		{name: "author text", field: FieldAuthor, value: "New Author", want: "New Author"},
		{name: "genre may be empty", field: FieldGenre, value: "", want: ""},
		{name: "favorite bool", field: FieldFavorite, value: true, want: true},
		{name: "favorite parses string", field: FieldFavorite, value: " true ", want: true},
		{name: "favorite rejects junk", field: FieldFavorite, value: "maybe", wantErr: ErrValidation},
		{name: "favorite rejects int", field: FieldFavorite, value: 1, wantErr: ErrValidation},
		{name: "title rejects bool", field: FieldTitle, value: true, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Book{ID: 7, Title: "Old", Author: "Someone", Genre: "Drama"}
			before := b

			err := tt.field.Set(&b, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, b, "failed Set must not change the book")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field.Get(b))
			assert.Equal(t, int64(7), b.ID)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
