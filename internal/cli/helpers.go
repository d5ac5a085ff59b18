// Shared helpers for shelf CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/filter"
	shelfsqlite "github.com/mesh-intelligence/shelf/pkg/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// favoriteMark prefixes favorite books in listings.
const favoriteMark = "★"

// withCatalogue attaches a catalogue, runs fn with its store, and detaches.
// A detach failure is reported only if fn succeeded.
func (a *app) withCatalogue(fn func(cat types.Catalogue, store types.BookStore) error) (err error) {
	cat := shelfsqlite.NewBackend()
	if err := cat.Attach(a.backendConfig()); err != nil {
		return sysErr(fmt.Errorf("attach catalogue: %w", err))
	}
	defer func() {
		if derr := cat.Detach(); derr != nil && err == nil {
			err = sysErr(fmt.Errorf("detach catalogue: %w", derr))
		}
	}()

	store, err := cat.Books()
	if err != nil {
		return sysErr(err)
	}
	return fn(cat, store)
}

// filterFlags are the list/edit flags that build filter criteria.
type filterFlags struct {
	keyword   string
	genre     string
	favorites bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "show books whose title, author, or genre contains this text")
	cmd.Flags().StringVar(&f.genre, "genre", filter.AllGenres, `show only this genre ("-" for all)`)
	cmd.Flags().BoolVar(&f.favorites, "favorites", false, "show only favorites")
}

func (f *filterFlags) criteria() filter.Criteria {
	return filter.Criteria{
		Keyword:       strings.TrimSpace(f.keyword),
		Genre:         f.genre,
		FavoritesOnly: f.favorites,
	}
}

// parseID parses a book ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErr("invalid book id %q: must be a positive integer", arg)
	}
	return id, nil
}

// formatBook renders one listing line: "1. ★ Title by Author (Genre)".
func formatBook(n int, b types.Book) string {
	return fmt.Sprintf("%d. %s", n, describeBook(b))
}

// describeBook renders "★ Title by Author (Genre)". The star and genre are
// omitted when unset.
func describeBook(b types.Book) string {
	var sb strings.Builder
	if b.Favorite {
		sb.WriteString(favoriteMark + " ")
	}
	fmt.Fprintf(&sb, "%s by %s", b.Title, b.Author)
	if b.Genre != "" {
		fmt.Fprintf(&sb, " (%s)", b.Genre)
	}
	return sb.String()
}

// printBooks writes a numbered listing, or books as JSON in JSON mode.
func (a *app) printBooks(w io.Writer, books []types.Book) error {
	if a.flags.jsonMode {
		return writeJSON(w, books)
	}
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return nil
	}
	for i, b := range books {
		fmt.Fprintln(w, formatBook(i+1, b))
	}
	return nil
}

// printBook writes the details of one book.
func (a *app) printBook(w io.Writer, b types.Book) error {
	if a.flags.jsonMode {
		return writeJSON(w, b)
	}
	fmt.Fprintf(w, "ID:       %d\n", b.ID)
	fmt.Fprintf(w, "Title:    %s\n", b.Title)
	fmt.Fprintf(w, "Author:   %s\n", b.Author)
	fmt.Fprintf(w, "Genre:    %s\n", b.Genre)
	fmt.Fprintf(w, "Favorite: %t\n", b.Favorite)
	return nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErr(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
