// Book commands: add, list, search, show, delete, favorite, edit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/view"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	var title, author, genre string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Example: `  shelf add --title "Dune" --author "Frank Herbert" --genre Sci-Fi
  shelf add --title "Emma" --author "Jane Austen" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				ctx := cmd.Context()
				id, err := store.Create(ctx, title, author, genre)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					book, err := store.Get(ctx, id)
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), book)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added book %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&author, "author", "", "book author (required)")
	cmd.Flags().StringVar(&genre, "genre", "", "book genre")
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered",
		Long: "List prints the books that match every given filter, numbered from 1.\n" +
			"The numbers are the row numbers that edit accepts with the same filters.",
		Example: `  shelf list
  shelf list --genre Mystery --favorites
  shelf list --keyword austen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				criteria := ff.criteria()
				binding := view.NewBinding(store, criteria)
				if err := binding.Refresh(cmd.Context()); err != nil {
					return err
				}
				if !a.flags.jsonMode && binding.Len() == 0 && len(binding.Snapshot()) > 0 && !criteria.IsZero() {
					fmt.Fprintln(cmd.OutOrStdout(), "No books match the filter.")
					return nil
				}
				return a.printBooks(cmd.OutOrStdout(), binding.Rows())
			})
		},
	}
	ff.register(cmd)
	return cmd
}

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search books by title, author, or genre",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				books, err := store.Search(cmd.Context(), keyword)
				if err != nil {
					return err
				}
				return a.printBooks(cmd.OutOrStdout(), books)
			})
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				book, err := store.Get(cmd.Context(), id)
				if err != nil {
					return notFound(err, id)
				}
				return a.printBook(cmd.OutOrStdout(), book)
			})
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Long:  "Delete removes a book. Deleting an ID that does not exist is not an error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				if err := store.Delete(cmd.Context(), id); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"deleted": id})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %d\n", id)
				return nil
			})
		},
	}
}

func (a *app) newFavoriteCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark a book as favorite",
		Example: `  shelf favorite 3
  shelf favorite 3 --off`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				ctx := cmd.Context()
				if _, err := store.Get(ctx, id); err != nil {
					return notFound(err, id)
				}
				if err := store.SetFavorite(ctx, id, !off); err != nil {
					return err
				}
				return a.reportBook(ctx, cmd, store, id)
			})
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "clear the favorite flag instead")
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "edit <row> <field> <value>",
		Short: "Edit one field of a listed book",
		Long: "Edit changes one field of the book at <row> in the listing produced by\n" +
			"list with the same filter flags. Fields: title, author, genre, favorite.\n" +
			"If the store rejects the change, nothing is modified.",
		Example: `  shelf edit 2 title "Dune Messiah"
  shelf edit 1 favorite true --genre Mystery`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil || row < 1 {
				return usageErr("invalid row %q: must be a positive integer", args[0])
			}
			field, err := types.LookupField(args[1])
			if err != nil {
				return err
			}

			return a.withCatalogue(func(_ types.Catalogue, store types.BookStore) error {
				ctx := cmd.Context()
				binding := view.NewBinding(store, ff.criteria())
				if err := binding.Refresh(ctx); err != nil {
					return err
				}
				book, err := binding.Row(row - 1)
				if err != nil {
					return fmt.Errorf("row %d: %w", row, err)
				}
				if err := binding.SetCell(ctx, row-1, field, args[2]); err != nil {
					return err
				}
				return a.reportBook(ctx, cmd, store, book.ID)
			})
		},
	}
	ff.register(cmd)
	return cmd
}

// reportBook prints the stored state of book id after a change.
func (a *app) reportBook(ctx context.Context, cmd *cobra.Command, store types.BookStore, id int64) error {
	book, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), book)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated book %d: %s\n", book.ID, describeBook(book))
	return nil
}

// notFound adds the ID to a not-found error.
func notFound(err error, id int64) error {
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("book %d: %w", id, err)
	}
	return err
}
