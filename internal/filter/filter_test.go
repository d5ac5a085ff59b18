package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

var catalogue = []types.Book{
	{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Favorite: true},
	{ID: 2, Title: "Emma", Author: "Jane Austen", Genre: "Romance"},
	{ID: 3, Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", Genre: "Mystery", Favorite: true},
	{ID: 4, Title: "Gone Girl", Author: "Gillian Flynn", Genre: "Mystery"},
	{ID: 5, Title: "Élan Vital", Author: "Ödön Szabó", Genre: "Essay"},
}

func ids(books []types.Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{"zero criteria pass everything", Criteria{}, []int64{1, 2, 3, 4, 5}},
		{"all genres sentinel passes everything", Criteria{Genre: AllGenres}, []int64{1, 2, 3, 4, 5}},
		{"keyword matches title ignoring case", Criteria{Keyword: "DUNE"}, []int64{1}},
		{"keyword matches author", Criteria{Keyword: "austen"}, []int64{2}},
		{"keyword matches genre", Criteria{Keyword: "myst"}, []int64{3, 4}},
		{"keyword folds non-ASCII case", Criteria{Keyword: "ÉLAN"}, []int64{5}},
		{"keyword folds non-ASCII author", Criteria{Keyword: "ödön"}, []int64{5}},
		{"genre is exact", Criteria{Genre: "Mystery"}, []int64{3, 4}},
		{"genre is case-sensitive", Criteria{Genre: "mystery"}, []int64{}},
		{"genre is not a substring match", Criteria{Genre: "Myst"}, []int64{}},
		{"favorites only", Criteria{FavoritesOnly: true}, []int64{1, 3}},
		{"mystery favorites with keyword", Criteria{Keyword: "hound", Genre: "Mystery", FavoritesOnly: true}, []int64{3}},
		{"mystery favorites", Criteria{Genre: "Mystery", FavoritesOnly: true}, []int64{3}},
		{"no match", Criteria{Keyword: "tolkien"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(catalogue, tt.criteria)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Apply(%+v) mismatch (-want +got):\n%s", tt.criteria, diff)
			}
		})
	}
}

func TestApply_FreshSliceAndInputUntouched(t *testing.T) {
	input := append([]types.Book(nil), catalogue...)

	got := Apply(input, Criteria{})
	assert.Equal(t, input, got)

	got[0].Title = "changed"
	assert.Equal(t, "Dune", input[0].Title, "result must not alias the input")
	if diff := cmp.Diff(catalogue, input); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}

	empty := Apply(nil, Criteria{Keyword: "x"})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPredicates_ComposeInAnyOrder(t *testing.T) {
	c := Criteria{Keyword: "o", Genre: "Mystery", FavoritesOnly: true}
	k, g, f := Keyword(c.Keyword), Genre(c.Genre), Favorites(c.FavoritesOnly)
	want := Apply(catalogue, c)

	orders := map[string][]Predicate{
		"k,g,f": {k, g, f},
		"k,f,g": {k, f, g},
		"g,k,f": {g, k, f},
		"g,f,k": {g, f, k},
		"f,k,g": {f, k, g},
		"f,g,k": {f, g, k},
	}

	for name, preds := range orders {
		t.Run("all "+name, func(t *testing.T) {
			if diff := cmp.Diff(want, Where(catalogue, All(preds...))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
		t.Run("chained "+name, func(t *testing.T) {
			got := catalogue
			for _, p := range preds {
				got = Where(got, p)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFavoriteToggleScenario(t *testing.T) {
	books := append([]types.Book(nil), catalogue...)
	c := Criteria{FavoritesOnly: true}
	assert.Equal(t, []int64{1, 3}, ids(Apply(books, c)))

	// Marking a book as favorite brings it into the favorites view in place.
	books[1].Favorite = true
	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(books, c)))

	books[0].Favorite = false
	assert.Equal(t, []int64{2, 3}, ids(Apply(books, c)))
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.True(t, Criteria{Genre: AllGenres}.IsZero())
	assert.False(t, Criteria{Keyword: "x"}.IsZero())
	assert.False(t, Criteria{Genre: "Mystery"}.IsZero())
	assert.False(t, Criteria{FavoritesOnly: true}.IsZero())
}

func TestAll_Empty(t *testing.T) {
	assert.Len(t, Where(catalogue, All()), len(catalogue))
}
